package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mindverse/internal/adapter/repo/gorm/model"
	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"

	"gorm.io/gorm"
)

// WorldRepo persists each simulation as a single jsonb aggregate guarded by a
// version column.
type WorldRepo struct {
	db *gorm.DB
}

func NewWorldRepo(db *gorm.DB) WorldRepo {
	return WorldRepo{db: db}
}

func (r WorldRepo) Create(ctx context.Context, world *mind.World) error {
	state, err := json.Marshal(world)
	if err != nil {
		return err
	}
	row := model.Simulation{
		SimulationID: world.SimulationID,
		Name:         world.Name,
		State:        state,
		Version:      world.Version,
		CreatedAt:    world.CreatedAt,
		UpdatedAt:    world.UpdatedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r WorldRepo) GetBySimulationID(ctx context.Context, simulationID string) (*mind.World, error) {
	var row model.Simulation
	if err := getDBFromCtx(ctx, r.db).Where("simulation_id = ?", simulationID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var w mind.World
	if err := json.Unmarshal(row.State, &w); err != nil {
		return nil, fmt.Errorf("decode world %s: %w", simulationID, err)
	}
	w.Version = row.Version
	return &w, nil
}

func (r WorldRepo) SaveWithVersion(ctx context.Context, world *mind.World, expectedVersion int64) error {
	state, err := json.Marshal(world)
	if err != nil {
		return err
	}
	res := getDBFromCtx(ctx, r.db).Model(&model.Simulation{}).
		Where("simulation_id = ? AND version = ?", world.SimulationID, expectedVersion).
		Updates(map[string]any{
			"state":      model.JSONB(state),
			"version":    world.Version,
			"updated_at": world.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
