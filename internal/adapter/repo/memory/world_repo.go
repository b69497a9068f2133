package memory

import (
	"context"
	"encoding/json"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

type WorldRepo struct {
	store *Store
}

func NewWorldRepo(store *Store) WorldRepo {
	return WorldRepo{store: store}
}

func (r WorldRepo) Create(_ context.Context, world *mind.World) error {
	raw, err := json.Marshal(world)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.worlds[world.SimulationID]; exists {
		return ports.ErrConflict
	}
	r.store.worlds[world.SimulationID] = raw
	r.store.versions[world.SimulationID] = world.Version
	return nil
}

func (r WorldRepo) GetBySimulationID(_ context.Context, simulationID string) (*mind.World, error) {
	r.store.mu.RLock()
	raw, ok := r.store.worlds[simulationID]
	r.store.mu.RUnlock()
	if !ok {
		return nil, ports.ErrNotFound
	}
	var w mind.World
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r WorldRepo) SaveWithVersion(_ context.Context, world *mind.World, expectedVersion int64) error {
	raw, err := json.Marshal(world)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.versions[world.SimulationID]
	if !ok || current != expectedVersion {
		return ports.ErrConflict
	}
	r.store.worlds[world.SimulationID] = raw
	r.store.versions[world.SimulationID] = world.Version
	return nil
}
