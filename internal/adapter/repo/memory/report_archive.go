package memory

import (
	"context"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

type ReportArchive struct {
	store *Store
}

func NewReportArchive(store *Store) ReportArchive {
	return ReportArchive{store: store}
}

func (r ReportArchive) Append(_ context.Context, report mind.TickReport) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.reports[report.SimulationID] = append(r.store.reports[report.SimulationID], report)
	return nil
}

func (r ReportArchive) GetByTick(_ context.Context, simulationID string, tick int64) (mind.TickReport, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, report := range r.store.reports[simulationID] {
		if report.Tick == tick {
			return report, nil
		}
	}
	return mind.TickReport{}, ports.ErrNotFound
}

// ListRange returns reports with tick >= fromTick in archival order, which the
// tick loop keeps ascending. limit <= 0 means no cap.
func (r ReportArchive) ListRange(_ context.Context, simulationID string, fromTick int64, limit int) ([]mind.TickReport, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []mind.TickReport
	for _, report := range r.store.reports[simulationID] {
		if report.Tick < fromTick {
			continue
		}
		out = append(out, report)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
