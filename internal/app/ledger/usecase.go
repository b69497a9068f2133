package ledger

import (
	"context"
	"errors"
	"strings"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

var ErrInvalidRequest = errors.New("invalid ledger request")

type Request struct {
	SimulationID string
	Limit        int
}

type Response struct {
	Entries []mind.LedgerEntry `json:"entries"`
}

// UseCase lists the newest spark movements so an operator can audit where
// every spark came from and went.
type UseCase struct {
	Entries ports.LedgerRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SimulationID) == "" || u.Entries == nil {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	entries, err := u.Entries.ListRecent(ctx, req.SimulationID, limit)
	if err != nil {
		return Response{}, err
	}
	return Response{Entries: entries}, nil
}
