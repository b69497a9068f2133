package replay

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sqlitearchive "mindverse/internal/adapter/archive/sqlite"
	"mindverse/internal/domain/mind"
)

func TestUseCase_ReadsBackArchivedReports(t *testing.T) {
	archive, err := sqlitearchive.Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer archive.Close()

	ctx := context.Background()
	for tick := int64(1); tick <= 5; tick++ {
		report := mind.TickReport{
			SimulationID: "sim-replay",
			Name:         "mindverse",
			Tick:         tick,
			MintedTotal:  3,
			AliveCount:   3,
			TotalSparks:  30,
			GeneratedAt:  time.Unix(1700000000+tick, 0).UTC(),
		}
		if tick == 3 {
			report.Raids = []mind.RaidRecord{{
				AttackerID:         "M000001",
				DefenderID:         "M000002",
				AttackerStrength:   12,
				DefenderStrength:   6,
				SuccessProbability: 12.0 / 18.0,
				Outcome:            mind.RaidWon,
				Transfer:           4,
				Tick:               tick,
			}}
			report.Vanished = []mind.VanishRecord{{AgentID: "M000002", Cause: mind.VanishCauseRaid, Tick: tick}}
		}
		if err := archive.Append(ctx, report); err != nil {
			t.Fatalf("append tick %d: %v", tick, err)
		}
	}
	// A second simulation in the same file must stay invisible to the first.
	if err := archive.Append(ctx, mind.TickReport{SimulationID: "sim-other", Tick: 1, MintedTotal: 99}); err != nil {
		t.Fatalf("append other sim: %v", err)
	}

	uc := UseCase{Reports: archive}
	out, err := uc.Execute(ctx, Request{SimulationID: "sim-replay", FromTick: 2, Limit: 3})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if got, want := len(out.Reports), 3; got != want {
		t.Fatalf("report count: got %d want %d", got, want)
	}
	if out.Reports[0].Tick != 2 || out.Reports[2].Tick != 4 {
		t.Fatalf("range order: got ticks %d..%d", out.Reports[0].Tick, out.Reports[2].Tick)
	}
	if out.Summary.SparksMinted != 9 || out.Summary.RaidsWon != 1 || out.Summary.Vanished != 1 {
		t.Fatalf("summary fold: %+v", out.Summary)
	}

	getUC := GetUseCase{Reports: archive}
	single, err := getUC.Execute(ctx, GetRequest{SimulationID: "sim-replay", Tick: 3})
	if err != nil {
		t.Fatalf("get tick 3: %v", err)
	}
	if len(single.Report.Raids) != 1 {
		t.Fatalf("expected raid record to survive archival, got %+v", single.Report)
	}
	raid := single.Report.Raids[0]
	if raid.AttackerID != "M000001" || raid.Transfer != 4 || raid.Outcome != mind.RaidWon {
		t.Fatalf("raid record mismatch: %+v", raid)
	}
	if got, want := single.Report.GeneratedAt, time.Unix(1700000003, 0).UTC(); !got.Equal(want) {
		t.Fatalf("generated at: got %v want %v", got, want)
	}
}
