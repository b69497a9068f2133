package observe

import (
	"context"
	"errors"
	"strings"

	"mindverse/internal/app/ports"
)

var (
	ErrInvalidRequest = errors.New("invalid observe request")
	ErrAgentNotFound  = ports.ErrNotFound
	ErrAgentVanished  = errors.New("agent has vanished")
)

type UseCase struct {
	Worlds ports.WorldRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SimulationID) == "" || strings.TrimSpace(req.AgentID) == "" {
		return Response{}, ErrInvalidRequest
	}
	w, err := u.Worlds.GetBySimulationID(ctx, req.SimulationID)
	if err != nil {
		return Response{}, err
	}
	obs, err := Build(w, req.AgentID)
	if err != nil {
		return Response{}, err
	}
	return Response{Observation: obs}, nil
}
