package memory

import (
	"context"

	"mindverse/internal/app/ports"
)

type CredentialRepo struct {
	store *Store
}

func NewCredentialRepo(store *Store) CredentialRepo {
	return CredentialRepo{store: store}
}

func (r CredentialRepo) Create(_ context.Context, credential ports.OperatorCredentialRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.credentials[credential.SimulationID]; exists {
		return ports.ErrConflict
	}
	r.store.credentials[credential.SimulationID] = credential
	return nil
}

func (r CredentialRepo) GetBySimulationID(_ context.Context, simulationID string) (ports.OperatorCredentialRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	cred, ok := r.store.credentials[simulationID]
	if !ok {
		return ports.OperatorCredentialRecord{}, ports.ErrNotFound
	}
	return cred, nil
}
