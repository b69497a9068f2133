package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

var (
	_ ports.WorldRepository              = WorldRepo{}
	_ ports.OperatorCredentialRepository = CredentialRepo{}
	_ ports.LedgerRepository             = LedgerRepo{}
	_ ports.ReportArchive                = ReportArchive{}
	_ ports.TxManager                    = TxManager{}
)

func newTestWorld(simID string) *mind.World {
	w := mind.NewWorld(simID, "mem-test", 1, mind.DefaultRules(), mind.Benefactor{Name: "Bob", Balance: 100}, time.Unix(1700000000, 0).UTC())
	w.SpawnAgent(mind.CharacterProfile{Name: "Aster", Species: "wisp"}, 10, 0)
	return w
}

func TestWorldRepo_VersionGate(t *testing.T) {
	repo := NewWorldRepo(NewStore())
	ctx := context.Background()

	w := newTestWorld("sim-1")
	if err := repo.Create(ctx, w); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, w); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("duplicate create: got %v want ErrConflict", err)
	}

	stale := newTestWorld("sim-1")
	stale.Version = 1
	if err := repo.SaveWithVersion(ctx, stale, 0); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("stale save: got %v want ErrConflict", err)
	}

	w.Tick = 1
	w.Version = 2
	if err := repo.SaveWithVersion(ctx, w, 1); err != nil {
		t.Fatalf("save v1->v2: %v", err)
	}
	got, err := repo.GetBySimulationID(ctx, "sim-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != 2 || got.Tick != 1 {
		t.Fatalf("got version=%d tick=%d, want 2/1", got.Version, got.Tick)
	}

	if err := repo.SaveWithVersion(ctx, w, 1); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("replayed save: got %v want ErrConflict", err)
	}
}

func TestWorldRepo_GetReturnsIsolatedCopy(t *testing.T) {
	repo := NewWorldRepo(NewStore())
	ctx := context.Background()
	if err := repo.Create(ctx, newTestWorld("sim-1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := repo.GetBySimulationID(ctx, "sim-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first.Agents["M000001"].Sparks = 0
	first.Tick = 99

	second, err := repo.GetBySimulationID(ctx, "sim-1")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if second.Agents["M000001"].Sparks != 10 || second.Tick != 0 {
		t.Fatalf("stored world mutated through a returned copy: sparks=%d tick=%d", second.Agents["M000001"].Sparks, second.Tick)
	}
}

func TestWorldRepo_MissingSimulationIsNotFound(t *testing.T) {
	repo := NewWorldRepo(NewStore())
	if _, err := repo.GetBySimulationID(context.Background(), "nope"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("got %v want ErrNotFound", err)
	}
}

func TestCredentialRepo_RoundTripAndConflict(t *testing.T) {
	repo := NewCredentialRepo(NewStore())
	ctx := context.Background()
	rec := ports.OperatorCredentialRecord{
		SimulationID: "sim-1",
		KeySalt:      []byte{1, 2},
		KeyHash:      []byte{3, 4},
		Status:       "active",
		CreatedAt:    time.Unix(1700000000, 0).UTC(),
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, rec); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("duplicate create: got %v want ErrConflict", err)
	}
	got, err := repo.GetBySimulationID(ctx, "sim-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != "active" || len(got.KeyHash) != 2 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestLedgerRepo_ListRecentReturnsTail(t *testing.T) {
	repo := NewLedgerRepo(NewStore())
	ctx := context.Background()
	entries := []mind.LedgerEntry{
		{Source: "M000001", Amount: 1, Reason: mind.ReasonUpkeep, Tick: 1},
		{Destination: "M000001", Amount: 2, Reason: mind.ReasonMint, Tick: 1},
		{Destination: "M000002", Amount: 3, Reason: mind.ReasonGrant, Tick: 2},
	}
	if err := repo.Append(ctx, "sim-1", entries); err != nil {
		t.Fatalf("append: %v", err)
	}

	tail, err := repo.ListRecent(ctx, "sim-1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tail) != 2 || tail[0].Reason != mind.ReasonMint || tail[1].Reason != mind.ReasonGrant {
		t.Fatalf("unexpected tail: %+v", tail)
	}

	all, err := repo.ListRecent(ctx, "sim-1", 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected full trail, got %d", len(all))
	}
}

func TestReportArchive_RangeAndLookup(t *testing.T) {
	archive := NewReportArchive(NewStore())
	ctx := context.Background()
	for tick := int64(1); tick <= 4; tick++ {
		if err := archive.Append(ctx, mind.TickReport{SimulationID: "sim-1", Tick: tick}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := archive.ListRange(ctx, "sim-1", 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Tick != 2 || got[1].Tick != 3 {
		t.Fatalf("unexpected range: %+v", got)
	}

	if _, err := archive.GetByTick(ctx, "sim-1", 3); err != nil {
		t.Fatalf("get tick 3: %v", err)
	}
	if _, err := archive.GetByTick(ctx, "sim-1", 9); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("missing tick: got %v want ErrNotFound", err)
	}
}
