// Package sqlitearchive keeps every completed tick report in an embedded
// SQLite database beside the main store, so replay survives restarts without
// needing postgres.
package sqlitearchive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

const schemaV1 = `
CREATE TABLE IF NOT EXISTS tick_reports (
	simulation_id TEXT NOT NULL,
	tick          INTEGER NOT NULL,
	report_json   TEXT NOT NULL DEFAULT '{}',
	created_at    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (simulation_id, tick)
);
`

type Archive struct {
	db *sql.DB
}

var _ ports.ReportArchive = (*Archive)(nil)

// Open opens the report database at path with WAL mode and a single writer,
// creating the schema if needed.
func Open(path string) (*Archive, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open report db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(context.Background(), schemaV1); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate report db: %w", err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Append stores one report per (simulation, tick). A tick re-run after a
// snapshot restore overwrites the abandoned timeline's report.
func (a *Archive) Append(ctx context.Context, report mind.TickReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	const q = `INSERT INTO tick_reports (simulation_id, tick, report_json, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(simulation_id, tick) DO UPDATE SET report_json = excluded.report_json, created_at = excluded.created_at`
	if _, err := a.db.ExecContext(ctx, q, report.SimulationID, report.Tick, string(payload), report.GeneratedAt.Unix()); err != nil {
		return fmt.Errorf("append report: %w", err)
	}
	return nil
}

func (a *Archive) GetByTick(ctx context.Context, simulationID string, tick int64) (mind.TickReport, error) {
	const q = `SELECT report_json FROM tick_reports WHERE simulation_id = ? AND tick = ?`
	var payload string
	err := a.db.QueryRowContext(ctx, q, simulationID, tick).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return mind.TickReport{}, ports.ErrNotFound
	}
	if err != nil {
		return mind.TickReport{}, fmt.Errorf("get report: %w", err)
	}
	var report mind.TickReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return mind.TickReport{}, fmt.Errorf("decode report %s/%d: %w", simulationID, tick, err)
	}
	return report, nil
}

// ListRange returns reports with tick >= fromTick in ascending tick order.
// limit <= 0 means no cap.
func (a *Archive) ListRange(ctx context.Context, simulationID string, fromTick int64, limit int) ([]mind.TickReport, error) {
	q := `SELECT report_json FROM tick_reports WHERE simulation_id = ? AND tick >= ? ORDER BY tick ASC`
	args := []any{simulationID, fromTick}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []mind.TickReport
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		var report mind.TickReport
		if err := json.Unmarshal([]byte(payload), &report); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		out = append(out, report)
	}
	return out, rows.Err()
}
