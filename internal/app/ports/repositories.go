package ports

import (
	"context"
	"time"

	"mindverse/internal/domain/mind"
)

// WorldRepository owns the authoritative world aggregate, one row per
// simulation. SaveWithVersion must fail with ErrConflict unless the stored
// version equals expectedVersion; that check is what serializes concurrent
// tick calls.
type WorldRepository interface {
	Create(ctx context.Context, world *mind.World) error
	GetBySimulationID(ctx context.Context, simulationID string) (*mind.World, error)
	SaveWithVersion(ctx context.Context, world *mind.World, expectedVersion int64) error
}

type OperatorCredentialRecord struct {
	SimulationID string
	KeySalt      []byte
	KeyHash      []byte
	Status       string
	CreatedAt    time.Time
}

type OperatorCredentialRepository interface {
	Create(ctx context.Context, credential OperatorCredentialRecord) error
	GetBySimulationID(ctx context.Context, simulationID string) (OperatorCredentialRecord, error)
}

// LedgerRepository is the append-only audit trail of spark movement.
type LedgerRepository interface {
	Append(ctx context.Context, simulationID string, entries []mind.LedgerEntry) error
	ListRecent(ctx context.Context, simulationID string, limit int) ([]mind.LedgerEntry, error)
}

// ReportArchive keeps every completed tick's report for replay.
type ReportArchive interface {
	Append(ctx context.Context, report mind.TickReport) error
	GetByTick(ctx context.Context, simulationID string, tick int64) (mind.TickReport, error)
	ListRange(ctx context.Context, simulationID string, fromTick int64, limit int) ([]mind.TickReport, error)
}

// SnapshotStore writes and reads point-in-time world exports keyed by
// simulation id and tick.
type SnapshotStore interface {
	Write(ctx context.Context, world *mind.World) error
	Read(ctx context.Context, simulationID string, tick int64) (*mind.World, error)
	Latest(ctx context.Context, simulationID string) (*mind.World, error)
}
