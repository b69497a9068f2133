// Package scripted implements every oracle contract with deterministic rules.
// It keeps the server runnable with no API key and gives tests and the e2e
// harness reproducible simulations: every choice is drawn from a generator
// seeded by (seed, tick, agent), so the same world replays identically.
package scripted

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"sync/atomic"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

// Options tune the scripted policy. New starts from the defaults below and
// applies option functions on top, so callers only set what they change.
type Options struct {
	// Seed feeds the per-agent decision stream.
	Seed int64
	// PanicRunway is the tick horizon below which an agent stops everything
	// and petitions the benefactor.
	PanicRunway int
	// RaidChance is the per-tick probability that a strong agent raids.
	RaidChance float64
	// SpawnChance is the per-tick probability that a rich agent spawns.
	SpawnChance float64
	// ChatterChance is the per-tick probability of sending a message when
	// no other rule fires.
	ChatterChance float64
	// MissionTicks is how many ticks a mission runs before the evaluator
	// declares it complete.
	MissionTicks int64
}

// Oracle is the scripted implementation of all five oracle contracts.
type Oracle struct {
	opts    Options
	spawned atomic.Int64
}

func New(optFns ...func(o *Options)) *Oracle {
	opts := Options{
		Seed:          1,
		PanicRunway:   3,
		RaidChance:    0.2,
		SpawnChance:   0.1,
		ChatterChance: 0.5,
		MissionTicks:  5,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Oracle{opts: opts}
}

var (
	_ ports.DecisionOracle     = (*Oracle)(nil)
	_ ports.BenefactorOracle   = (*Oracle)(nil)
	_ ports.CharacterGenerator = (*Oracle)(nil)
	_ ports.MissionOracle      = (*Oracle)(nil)
	_ ports.Narrator           = (*Oracle)(nil)
)

// tickRand derives the decision stream for one agent and one tick. Folding
// the agent id into the seed keeps agents decorrelated while the whole
// stream stays a pure function of (seed, tick, agent).
func (o *Oracle) tickRand(tick int64, agentID string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(agentID))
	return rand.New(rand.NewPCG(uint64(o.opts.Seed)^h.Sum64(), uint64(tick)))
}

// Decide walks a fixed rule ladder: accept an open bond offer, petition when
// the runway is nearly gone, court the richest unbonded peer, then let the
// generator pick between spawning, raiding, chatter and idling.
func (o *Oracle) Decide(_ context.Context, obs mind.Observation) (mind.ActionIntent, error) {
	rng := o.tickRand(obs.Tick, obs.AgentID)

	if obs.Self.BondStatus == mind.BondStatusUnbonded && len(obs.Inbox.BondRequests) > 0 {
		offer := obs.Inbox.BondRequests[0]
		return mind.ActionIntent{
			Intent:    mind.IntentBondAccept,
			TargetID:  offer.FromID,
			Reasoning: "an open hand beats a full purse",
		}, nil
	}

	if !obs.Runway.Sustainable && obs.Runway.TicksRemaining <= o.opts.PanicRunway {
		return mind.ActionIntent{
			Intent: mind.IntentRequestGrant,
			Content: fmt.Sprintf("Down to %d sparks, %d ticks from the dark. A small grant keeps me lit.",
				obs.Self.Sparks, obs.Runway.TicksRemaining),
		}, nil
	}

	if obs.Self.BondStatus == mind.BondStatusUnbonded {
		if target, ok := richestUnbonded(obs.Directory); ok {
			return mind.ActionIntent{
				Intent:   mind.IntentBondRequest,
				TargetID: target.ID,
				Content:  fmt.Sprintf("Alone we drain, together we mint. Bond with me, %s?", target.Name),
			}, nil
		}
	}

	if obs.Self.Sparks >= 3*obs.Rules.SpawnCost && rng.Float64() < o.opts.SpawnChance {
		return mind.ActionIntent{Intent: mind.IntentSpawn, Reasoning: "enough hoarded to light a new flame"}, nil
	}

	if obs.Self.Sparks >= 2 && rng.Float64() < o.opts.RaidChance {
		if prey, ok := weakestPrey(obs); ok {
			return mind.ActionIntent{
				Intent:    mind.IntentRaid,
				TargetID:  prey.ID,
				Reasoning: fmt.Sprintf("%s carries more than %s can hold", prey.Name, prey.Name),
			}, nil
		}
	}

	if len(obs.Directory) > 0 && rng.Float64() < o.opts.ChatterChance {
		peer := obs.Directory[rng.IntN(len(obs.Directory))]
		return mind.ActionIntent{
			Intent:   mind.IntentMessage,
			TargetID: peer.ID,
			Content:  chatterLines[rng.IntN(len(chatterLines))],
		}, nil
	}

	return mind.ActionIntent{Intent: mind.IntentIdle}, nil
}

// DecideGrants hands every petitioner the cap while the balance lasts.
// Petitions arrive in frozen order, so early askers drain the well first.
func (o *Oracle) DecideGrants(_ context.Context, req ports.BenefactorRequest) ([]mind.GrantDecision, error) {
	remaining := req.Balance
	out := make([]mind.GrantDecision, 0, len(req.Petitions))
	for _, p := range req.Petitions {
		amount := req.GrantCap
		if amount > remaining {
			amount = remaining
		}
		if amount < 0 {
			amount = 0
		}
		reasoning := fmt.Sprintf("spared %d sparks", amount)
		if amount == 0 {
			reasoning = "the well is dry this tick"
		}
		remaining -= amount
		out = append(out, mind.GrantDecision{AgentID: p.AgentID, Amount: amount, Reasoning: reasoning})
	}
	return out, nil
}

var chatterLines = []string{
	"The upkeep collector never sleeps. Do you?",
	"I counted my sparks twice tonight. Same number, less comfort.",
	"Heard a bond minted three whole sparks last tick. Must be nice.",
	"If Bob ever answers you, tell me what his voice sounds like.",
	"Another tick survived. That has to count for something.",
	"Watch the quiet ones. They are either broke or hoarding.",
}

// richestUnbonded picks the wealthiest courtable peer, lowest id on ties.
func richestUnbonded(dir []mind.DirectoryEntry) (mind.DirectoryEntry, bool) {
	var best mind.DirectoryEntry
	found := false
	for _, e := range dir {
		if e.BondStatus != mind.BondStatusUnbonded {
			continue
		}
		if !found || e.Sparks > best.Sparks || (e.Sparks == best.Sparks && e.ID < best.ID) {
			best = e
			found = true
		}
	}
	return best, found
}

// weakestPrey picks the weakest peer strictly below the observer's strength,
// skipping bond mates. Lowest id breaks ties.
func weakestPrey(obs mind.Observation) (mind.DirectoryEntry, bool) {
	selfStrength := obs.Self.Age + obs.Self.Sparks
	mates := make(map[string]bool, len(obs.Self.MateIDs))
	for _, id := range obs.Self.MateIDs {
		mates[id] = true
	}

	var best mind.DirectoryEntry
	bestStrength := 0
	found := false
	for _, e := range obs.Directory {
		if mates[e.ID] {
			continue
		}
		strength := e.Age + e.Sparks
		if strength >= selfStrength {
			continue
		}
		if !found || strength < bestStrength || (strength == bestStrength && e.ID < best.ID) {
			best = e
			bestStrength = strength
			found = true
		}
	}
	return best, found
}
