package sqlitearchive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

func TestArchive_AppendAndListRange(t *testing.T) {
	archive, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer archive.Close()

	ctx := context.Background()
	for tick := int64(1); tick <= 4; tick++ {
		report := mind.TickReport{
			SimulationID: "sim-1",
			Tick:         tick,
			MintedTotal:  int(tick),
			GeneratedAt:  time.Unix(1700000000+tick, 0).UTC(),
		}
		if err := archive.Append(ctx, report); err != nil {
			t.Fatalf("append tick %d: %v", tick, err)
		}
	}

	got, err := archive.ListRange(ctx, "sim-1", 2, 2)
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(got) != 2 || got[0].Tick != 2 || got[1].Tick != 3 {
		t.Fatalf("unexpected range: %+v", got)
	}

	all, err := archive.ListRange(ctx, "sim-1", 0, 0)
	if err != nil {
		t.Fatalf("ListRange all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 reports, got %d", len(all))
	}
}

func TestArchive_GetByTickMissing(t *testing.T) {
	archive, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer archive.Close()

	if _, err := archive.GetByTick(context.Background(), "sim-1", 9); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArchive_RewritesTickAfterRestore(t *testing.T) {
	archive, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer archive.Close()

	ctx := context.Background()
	if err := archive.Append(ctx, mind.TickReport{SimulationID: "sim-1", Tick: 3, Narrative: "old timeline"}); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := archive.Append(ctx, mind.TickReport{SimulationID: "sim-1", Tick: 3, Narrative: "new timeline"}); err != nil {
		t.Fatalf("second append: %v", err)
	}

	got, err := archive.GetByTick(ctx, "sim-1", 3)
	if err != nil {
		t.Fatalf("GetByTick: %v", err)
	}
	if got.Narrative != "new timeline" {
		t.Fatalf("expected rewritten report, got %q", got.Narrative)
	}
}

func TestArchive_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.db")
	archive, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	report := mind.TickReport{
		SimulationID: "sim-1",
		Tick:         1,
		Vanished:     []mind.VanishRecord{{AgentID: "M000003", Cause: mind.VanishCauseUpkeep, Age: 4, Tick: 1}},
	}
	if err := archive.Append(ctx, report); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := archive.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetByTick(ctx, "sim-1", 1)
	if err != nil {
		t.Fatalf("GetByTick after reopen: %v", err)
	}
	if len(got.Vanished) != 1 || got.Vanished[0].Cause != mind.VanishCauseUpkeep {
		t.Fatalf("vanish record lost across reopen: %+v", got)
	}
}
