package status

import (
	"context"
	"errors"
	"sort"
	"strings"

	"mindverse/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Worlds ports.WorldRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SimulationID) == "" {
		return Response{}, ErrInvalidRequest
	}
	w, err := u.Worlds.GetBySimulationID(ctx, req.SimulationID)
	if err != nil {
		return Response{}, err
	}

	resp := Response{
		SimulationID:      w.SimulationID,
		Name:              w.Name,
		Tick:              w.Tick,
		AliveCount:        w.AliveCount(),
		VanishedCount:     w.VanishedCount(),
		ActiveBonds:       len(w.Bonds),
		ActiveMissions:    w.ActiveMissionCount(),
		TotalSparks:       w.TotalSparks(),
		BenefactorName:    w.Benefactor.Name,
		BenefactorBalance: w.Benefactor.Balance,
		Agents:            []AgentStatus{},
		Bonds:             []BondStatus{},
		UpdatedAt:         w.UpdatedAt,
	}

	ids := make([]string, 0, len(w.Agents))
	for id := range w.Agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		a := w.Agents[id]
		resp.Agents = append(resp.Agents, AgentStatus{
			ID:         a.ID,
			Name:       a.Name,
			Species:    a.Species,
			Sparks:     a.Sparks,
			Age:        a.Age,
			Status:     string(a.Status),
			BondStatus: string(a.BondStatus),
			BondID:     a.BondID,
		})
	}

	for _, bondID := range w.ActiveBondIDs() {
		b := w.Bonds[bondID]
		entry := BondStatus{
			ID:          b.ID,
			MemberIDs:   append([]string(nil), b.MemberIDs...),
			LeaderID:    b.LeaderID,
			MissionID:   b.MissionID,
			CreatedTick: b.CreatedTick,
		}
		if m, ok := w.Mission(b.MissionID); ok {
			entry.MissionTitle = m.Title
		}
		resp.Bonds = append(resp.Bonds, entry)
	}
	return resp, nil
}
