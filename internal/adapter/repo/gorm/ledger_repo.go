package gormrepo

import (
	"context"
	"time"

	"mindverse/internal/adapter/repo/gorm/model"
	"mindverse/internal/domain/mind"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepo {
	return LedgerRepo{db: db}
}

func (r LedgerRepo) Append(ctx context.Context, simulationID string, entries []mind.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]model.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, model.LedgerEntry{
			SimulationID: simulationID,
			Source:       e.Source,
			Destination:  e.Destination,
			Amount:       e.Amount,
			Reason:       string(e.Reason),
			Tick:         e.Tick,
			CreatedAt:    now,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

// ListRecent returns the newest limit entries, oldest first so callers read
// them in append order. limit <= 0 means the whole trail.
func (r LedgerRepo) ListRecent(ctx context.Context, simulationID string, limit int) ([]mind.LedgerEntry, error) {
	rows := []model.LedgerEntry{}
	query := getDBFromCtx(ctx, r.db).
		Where("simulation_id = ?", simulationID).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]mind.LedgerEntry, len(rows))
	for i, row := range rows {
		out[len(rows)-1-i] = mind.LedgerEntry{
			Source:      row.Source,
			Destination: row.Destination,
			Amount:      row.Amount,
			Reason:      mind.LedgerReason(row.Reason),
			Tick:        row.Tick,
		}
	}
	return out, nil
}
