package restore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindverse/internal/app/auth"
	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
	"mindverse/internal/logging"
)

var (
	ErrInvalidRequest = errors.New("invalid restore request")
	// ErrNoSnapshot means nothing on disk can rebuild the simulation.
	ErrNoSnapshot = errors.New("no snapshot for simulation")
)

type Request struct {
	SimulationID string `json:"simulation_id"`
	// Tick selects a specific snapshot; zero means the newest one.
	Tick int64 `json:"tick,omitempty"`
}

type Response struct {
	SimulationID string `json:"simulation_id"`
	OperatorKey  string `json:"operator_key"`
	Name         string `json:"name"`
	Tick         int64  `json:"tick"`
	AliveCount   int    `json:"alive_count"`
	RestoredAt   string `json:"restored_at"`
}

// UseCase rebuilds a lost simulation from its snapshot files. The world row
// and a fresh operator credential are created together; the old key is gone
// with the old database, so a new one is minted and returned once.
type UseCase struct {
	Worlds      ports.WorldRepository
	Credentials ports.OperatorCredentialRepository
	Snapshots   ports.SnapshotStore
	TxManager   ports.TxManager
	Logger      logging.Logger
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SimulationID = strings.TrimSpace(req.SimulationID)
	if req.SimulationID == "" || req.Tick < 0 {
		return Response{}, ErrInvalidRequest
	}
	if u.Worlds == nil || u.Credentials == nil || u.Snapshots == nil || u.TxManager == nil {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	var (
		world *mind.World
		err   error
	)
	if req.Tick == 0 {
		world, err = u.Snapshots.Latest(ctx, req.SimulationID)
	} else {
		world, err = u.Snapshots.Read(ctx, req.SimulationID, req.Tick)
	}
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{}, ErrNoSnapshot
		}
		return Response{}, err
	}
	if err := world.Validate(); err != nil {
		return Response{}, fmt.Errorf("snapshot for %s is corrupt: %v", req.SimulationID, err)
	}

	cred, err := auth.NewCredential()
	if err != nil {
		return Response{}, err
	}

	world.UpdatedAt = now
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Credentials.Create(txCtx, ports.OperatorCredentialRecord{
			SimulationID: world.SimulationID,
			KeySalt:      cred.KeySalt,
			KeyHash:      cred.KeyHash,
			Status:       auth.CredentialStatusActive,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		return u.Worlds.Create(txCtx, world)
	})
	if err != nil {
		return Response{}, err
	}

	logging.OrNoOp(u.Logger).Info("simulation restored from snapshot",
		"simulation_id", world.SimulationID, "tick", world.Tick, "alive", world.AliveCount())

	return Response{
		SimulationID: world.SimulationID,
		OperatorKey:  cred.Key,
		Name:         world.Name,
		Tick:         world.Tick,
		AliveCount:   world.AliveCount(),
		RestoredAt:   now.Format(time.RFC3339),
	}, nil
}
