package memory

import (
	"context"

	"mindverse/internal/domain/mind"
)

type LedgerRepo struct {
	store *Store
}

func NewLedgerRepo(store *Store) LedgerRepo {
	return LedgerRepo{store: store}
}

func (r LedgerRepo) Append(_ context.Context, simulationID string, entries []mind.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ledger[simulationID] = append(r.store.ledger[simulationID], entries...)
	return nil
}

// ListRecent returns the newest limit entries in append order. limit <= 0
// means the whole trail.
func (r LedgerRepo) ListRecent(_ context.Context, simulationID string, limit int) ([]mind.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := r.store.ledger[simulationID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]mind.LedgerEntry, limit)
	copy(out, all[len(all)-limit:])
	return out, nil
}
