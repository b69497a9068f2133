package inmemory

import (
	"testing"

	"mindverse/internal/domain/mind"
)

func TestRecorderSnapshotFor(t *testing.T) {
	r := NewRecorder()
	r.RecordTick("sim-1")
	r.RecordTick("sim-1")
	r.RecordAction("sim-1", mind.IntentRaid, mind.ActionResolved)
	r.RecordAction("sim-1", mind.IntentMessage, mind.ActionQueued)
	r.RecordAction("sim-1", mind.IntentRaid, mind.ActionRefused)
	r.RecordOracle("sim-1", "decision", true)
	r.RecordOracle("sim-1", "decision", false)
	r.RecordOracle("sim-1", "narrator", true)
	r.RecordConflict("sim-1")
	r.RecordEconomy("sim-1", 6, 3, 1)

	s := r.SnapshotFor("sim-1")
	if s.Ticks != 2 {
		t.Fatalf("ticks = %d, want 2", s.Ticks)
	}
	if s.ActionTotal != 3 {
		t.Fatalf("actions = %d, want 3", s.ActionTotal)
	}
	if s.ByIntent[string(mind.IntentRaid)] != 2 {
		t.Fatalf("raid intents = %d, want 2", s.ByIntent[string(mind.IntentRaid)])
	}
	if s.ByResult[string(mind.ActionRefused)] != 1 {
		t.Fatalf("refused results = %d, want 1", s.ByResult[string(mind.ActionRefused)])
	}
	if s.OracleCalls["decision"] != 2 || s.OracleFailures["decision"] != 1 {
		t.Fatalf("decision oracle = %d calls %d failures, want 2/1",
			s.OracleCalls["decision"], s.OracleFailures["decision"])
	}
	if s.Conflicts != 1 {
		t.Fatalf("conflicts = %d, want 1", s.Conflicts)
	}
	if s.SparksMinted != 6 || s.SparksGranted != 3 || s.Vanished != 1 {
		t.Fatalf("economy = %d/%d/%d, want 6/3/1", s.SparksMinted, s.SparksGranted, s.Vanished)
	}
}

func TestRecorderKeepsSimulationsApart(t *testing.T) {
	r := NewRecorder()
	r.RecordTick("sim-1")
	r.RecordTick("sim-2")
	r.RecordTick("sim-2")

	if got := r.SnapshotFor("sim-1").Ticks; got != 1 {
		t.Fatalf("sim-1 ticks = %d, want 1", got)
	}
	if got := r.SnapshotFor("sim-2").Ticks; got != 2 {
		t.Fatalf("sim-2 ticks = %d, want 2", got)
	}

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("all = %d sims, want 2", len(all))
	}
}

func TestRecorderUnknownSimulationIsZero(t *testing.T) {
	r := NewRecorder()
	s := r.SnapshotFor("nope")
	if s.Ticks != 0 || s.ActionTotal != 0 {
		t.Fatalf("unknown sim should be zero, got %+v", s)
	}
	if s.ByIntent == nil || s.OracleCalls == nil {
		t.Fatalf("maps should be non-nil for serving")
	}
}
