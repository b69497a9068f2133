package scripted

import (
	"context"
	"testing"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

func baseObservation() mind.Observation {
	return mind.Observation{
		AgentID: "M000001",
		Tick:    4,
		Self: mind.SelfView{
			ID: "M000001", Name: "Aster", Sparks: 10, Age: 4,
			BondStatus: mind.BondStatusUnbonded,
		},
		Runway: mind.RunwayView{NetPerTick: -1, TicksRemaining: 10},
		Directory: []mind.DirectoryEntry{
			{ID: "M000002", Name: "Wren", Sparks: 5, Age: 3, BondStatus: mind.BondStatusUnbonded},
			{ID: "M000003", Name: "Moss", Sparks: 9, Age: 2, BondStatus: mind.BondStatusUnbonded},
			{ID: "M000004", Name: "Rime", Sparks: 50, Age: 9, BondStatus: mind.BondStatusBonded},
		},
		Benefactor: mind.ObservedBenefactor{Name: "Bob", Balance: 100, GrantCap: 5},
		Rules:      mind.ObservedRules{UpkeepPerTick: 1, SpawnCost: 5, RaidStealMax: 5, GrantCap: 5},
	}
}

func TestOracle_AcceptsPendingBondOffer(t *testing.T) {
	o := New()
	obs := baseObservation()
	obs.Inbox.BondRequests = []mind.InboxItem{
		{FromID: "M000002", FromName: "Wren", Content: "bond with me?", Tick: 3},
	}
	// Acceptance outranks even a critical runway.
	obs.Self.Sparks = 2
	obs.Runway = mind.RunwayView{NetPerTick: -1, TicksRemaining: 2, Causes: []string{"UNBONDED_DRAIN", "CRITICAL"}}

	got, err := o.Decide(context.Background(), obs)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Intent != mind.IntentBondAccept {
		t.Fatalf("intent = %q, want %q", got.Intent, mind.IntentBondAccept)
	}
	if got.TargetID != "M000002" {
		t.Fatalf("target = %q, want M000002", got.TargetID)
	}
}

func TestOracle_PetitionsWhenRunwayCritical(t *testing.T) {
	o := New()
	obs := baseObservation()
	obs.Self.Sparks = 2
	obs.Runway = mind.RunwayView{NetPerTick: -1, TicksRemaining: 2, Causes: []string{"UNBONDED_DRAIN", "CRITICAL"}}

	got, err := o.Decide(context.Background(), obs)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Intent != mind.IntentRequestGrant {
		t.Fatalf("intent = %q, want %q", got.Intent, mind.IntentRequestGrant)
	}
	if got.Content == "" {
		t.Fatalf("petition should carry a plea")
	}
}

func TestOracle_CourtsRichestUnbondedPeer(t *testing.T) {
	o := New()
	obs := baseObservation()

	got, err := o.Decide(context.Background(), obs)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Intent != mind.IntentBondRequest {
		t.Fatalf("intent = %q, want %q", got.Intent, mind.IntentBondRequest)
	}
	// M000004 is richer but bonded; M000003 is the richest courtable peer.
	if got.TargetID != "M000003" {
		t.Fatalf("target = %q, want M000003", got.TargetID)
	}
}

func TestOracle_BondedAgentFallsThroughToIdle(t *testing.T) {
	o := New(func(opts *Options) {
		opts.RaidChance = 0
		opts.SpawnChance = 0
		opts.ChatterChance = 0
	})
	obs := baseObservation()
	obs.Self.BondStatus = mind.BondStatusBonded
	obs.Self.MateIDs = []string{"M000002"}
	obs.Runway = mind.RunwayView{NetPerTick: 0, Sustainable: true}

	got, err := o.Decide(context.Background(), obs)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Intent != mind.IntentIdle {
		t.Fatalf("intent = %q, want %q", got.Intent, mind.IntentIdle)
	}
}

func TestOracle_RaidTargetsWeakerNonMate(t *testing.T) {
	o := New(func(opts *Options) {
		opts.RaidChance = 1
		opts.SpawnChance = 0
		opts.ChatterChance = 0
	})
	obs := baseObservation()
	obs.Self.BondStatus = mind.BondStatusBonded
	obs.Self.MateIDs = []string{"M000002"}
	obs.Self.Sparks = 20
	obs.Self.Age = 10
	obs.Runway = mind.RunwayView{NetPerTick: 0, Sustainable: true}

	got, err := o.Decide(context.Background(), obs)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Intent != mind.IntentRaid {
		t.Fatalf("intent = %q, want %q", got.Intent, mind.IntentRaid)
	}
	// M000002 is weaker but a bond mate; M000003 is the weakest fair target.
	if got.TargetID != "M000003" {
		t.Fatalf("target = %q, want M000003", got.TargetID)
	}
}

func TestOracle_DecideIsDeterministic(t *testing.T) {
	a := New(func(opts *Options) { opts.Seed = 7 })
	b := New(func(opts *Options) { opts.Seed = 7 })

	for tickNo := int64(1); tickNo <= 20; tickNo++ {
		obs := baseObservation()
		obs.Tick = tickNo
		obs.Self.BondStatus = mind.BondStatusBonded
		obs.Self.MateIDs = []string{"M000002"}
		obs.Runway = mind.RunwayView{NetPerTick: 0, Sustainable: true}

		first, err := a.Decide(context.Background(), obs)
		if err != nil {
			t.Fatalf("tick %d: %v", tickNo, err)
		}
		second, err := b.Decide(context.Background(), obs)
		if err != nil {
			t.Fatalf("tick %d: %v", tickNo, err)
		}
		if first != second {
			t.Fatalf("tick %d: same seed diverged: %+v vs %+v", tickNo, first, second)
		}
	}
}

func TestOracle_GrantsDrainTheBalance(t *testing.T) {
	o := New()
	got, err := o.DecideGrants(context.Background(), ports.BenefactorRequest{
		SimulationID: "sim-1",
		Tick:         5,
		Balance:      7,
		GrantCap:     5,
		Petitions: []mind.GrantPetition{
			{AgentID: "M000001", Content: "please", Tick: 4},
			{AgentID: "M000002", Content: "me too", Tick: 4},
			{AgentID: "M000003", Content: "anything", Tick: 4},
		},
	})
	if err != nil {
		t.Fatalf("DecideGrants: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("decisions = %d, want 3", len(got))
	}
	amounts := []int{got[0].Amount, got[1].Amount, got[2].Amount}
	if amounts[0] != 5 || amounts[1] != 2 || amounts[2] != 0 {
		t.Fatalf("amounts = %v, want [5 2 0]", amounts)
	}
	if got[2].Reasoning != "the well is dry this tick" {
		t.Fatalf("dry-well reasoning missing, got %q", got[2].Reasoning)
	}
}
