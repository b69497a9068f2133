package replay

import (
	"context"
	"errors"
	"strings"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

var ErrInvalidRequest = errors.New("invalid replay request")

// UseCase lists archived tick reports in tick order, starting at FromTick,
// and folds the returned range into a Summary.
type UseCase struct {
	Reports ports.ReportArchive
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SimulationID) == "" || u.Reports == nil {
		return Response{}, ErrInvalidRequest
	}
	if req.FromTick < 0 {
		req.FromTick = 0
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	reports, err := u.Reports.ListRange(ctx, req.SimulationID, req.FromTick, limit)
	if err != nil {
		return Response{}, err
	}
	return Response{Reports: reports, Summary: summarize(reports)}, nil
}

func summarize(reports []mind.TickReport) Summary {
	var s Summary
	for i, r := range reports {
		if i == 0 {
			s.FromTick = r.Tick
		}
		s.ToTick = r.Tick
		s.TicksCovered++
		s.SparksMinted += r.MintedTotal
		for _, g := range r.Grants {
			s.SparksGranted += g.Granted
		}
		s.BondsFormed += len(r.BondsFormed)
		s.BondsDissolved += len(r.BondsDissolved)
		s.MissionsCompleted += len(r.MissionsCompleted)
		for _, raid := range r.Raids {
			switch raid.Outcome {
			case mind.RaidWon:
				s.RaidsWon++
			case mind.RaidLost:
				s.RaidsLost++
			default:
				s.RaidsRefused++
			}
		}
		s.Spawned += len(r.Spawns)
		s.Vanished += len(r.Vanished)
		s.MessagesQueued += r.MessagesQueued
	}
	return s
}

// GetUseCase fetches a single archived report by tick.
type GetUseCase struct {
	Reports ports.ReportArchive
}

func (u GetUseCase) Execute(ctx context.Context, req GetRequest) (GetResponse, error) {
	if strings.TrimSpace(req.SimulationID) == "" || req.Tick <= 0 || u.Reports == nil {
		return GetResponse{}, ErrInvalidRequest
	}
	report, err := u.Reports.GetByTick(ctx, req.SimulationID, req.Tick)
	if err != nil {
		return GetResponse{}, err
	}
	return GetResponse{Report: report}, nil
}
