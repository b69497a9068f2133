package tick

import (
	"context"
	"math/rand/v2"
	"time"

	"mindverse/internal/app/observe"
	"mindverse/internal/domain/mind"
)

// tickRun is the working set of one tick call: the world being mutated, the
// report being assembled and the ledger entries accumulated for the audit
// trail. It never outlives the Execute call that created it.
type tickRun struct {
	w      *mind.World
	tick   int64
	rng    *rand.Rand
	report mind.TickReport
	ledger []mind.LedgerEntry
	// valid holds the actions that survived generic validation, one per agent,
	// in agent id order. Resolution and mission evaluation both read it.
	valid []mind.PendingAction
}

func (r *tickRun) record(rec mind.ActionRecord) {
	r.report.Actions = append(r.report.Actions, rec)
}

func (r *tickRun) appendVanish(res mind.VanishResult) {
	r.report.Vanished = append(r.report.Vanished, res.Vanished)
	r.report.BondsDissolved = append(r.report.BondsDissolved, res.BondsDissolved...)
	r.report.MissionsCompleted = append(r.report.MissionsCompleted, res.MissionsCompleted...)
}

// applyEconomy runs the fixed ledger sequence: upkeep with same-stage
// vanishing, bond minting, then grant settlement for last tick's petitions
// followed by the benefactor's regeneration. Settled outcomes are published
// on the world before decision collection so this tick's observations carry
// them.
func (u UseCase) applyEconomy(ctx context.Context, r *tickRun) {
	upkeep := u.Economy.ApplyUpkeep(r.w, r.tick)
	r.report.Upkeep = upkeep.Entries
	r.ledger = append(r.ledger, upkeep.Entries...)
	for _, v := range upkeep.Vanishes {
		r.appendVanish(v)
	}

	minted := u.Economy.MintBondIncome(r.w, r.rng, r.tick)
	r.report.Minted = minted
	for _, e := range minted {
		r.report.MintedTotal += e.Amount
	}
	r.ledger = append(r.ledger, minted...)

	petitions := r.w.FrozenGrantPetitions()
	decisions := u.decideGrants(ctx, r.w, r.tick, petitions)
	outcomes, grantEntries := u.Economy.ApplyGrants(r.w, petitions, decisions, r.tick)
	r.w.GrantOutcomes = outcomes
	r.report.Grants = outcomes
	r.ledger = append(r.ledger, grantEntries...)

	r.ledger = append(r.ledger, u.Economy.Regenerate(r.w, r.tick))
}

// collectDecisions polls the decision oracle once per living agent, in agent
// id order, against the observation for this tick. Idles and malformed
// intents are recorded here; everything else becomes a pending action for the
// resolution stage. One agent, one action, enforced by construction.
func (u UseCase) collectDecisions(ctx context.Context, r *tickRun) {
	for _, id := range r.w.AliveAgentIDs() {
		obs, err := observe.Build(r.w, id)
		if err != nil {
			continue
		}
		intent, ok := u.decideOne(ctx, r.w.SimulationID, obs)
		if !ok {
			r.record(mind.ActionRecord{AgentID: id, Intent: mind.IntentIdle, Result: mind.ActionIdled, Reason: "oracle failure"})
			continue
		}
		switch {
		case intent.Intent == "" || intent.Intent == mind.IntentIdle:
			r.record(mind.ActionRecord{AgentID: id, Intent: mind.IntentIdle, Result: mind.ActionIdled})
		case !mind.ValidIntent(intent.Intent):
			r.record(mind.ActionRecord{AgentID: id, Intent: intent.Intent, Result: mind.ActionDropped, Reason: "unknown intent"})
		default:
			if reason := validateTargeting(r.w, id, intent); reason != "" {
				r.record(mind.ActionRecord{AgentID: id, Intent: intent.Intent, TargetID: intent.TargetID, Result: mind.ActionDropped, Reason: reason})
				continue
			}
			r.valid = append(r.valid, mind.PendingAction{
				AgentID:   id,
				Intent:    intent.Intent,
				TargetID:  intent.TargetID,
				Content:   intent.Content,
				Reasoning: intent.Reasoning,
				Tick:      r.tick,
			})
		}
	}
}

// validateTargeting applies the target rules shared by raid, message and
// bond-request. Accepts are validated against the frozen generation by the
// bonding protocol instead, and grant petitions carry no target at all.
func validateTargeting(w *mind.World, agentID string, intent mind.ActionIntent) string {
	switch intent.Intent {
	case mind.IntentRaid, mind.IntentMessage, mind.IntentBondRequest:
	default:
		return ""
	}
	if intent.TargetID == "" {
		return "missing target"
	}
	if intent.TargetID == agentID {
		return "self target"
	}
	target, ok := w.Agent(intent.TargetID)
	if !ok {
		return "unknown target"
	}
	if !target.Alive() {
		return "target vanished"
	}
	if intent.Intent == mind.IntentBondRequest {
		if a, ok := w.Agent(agentID); ok && a.BondStatus != mind.BondStatusUnbonded {
			return "already bonded"
		}
	}
	return ""
}

// resolveActions is stage five: bonding first, then raids, then spawns, then
// the intents that only queue for next tick. Each sub-stage that can zero a
// balance runs its own vanish sweep so nothing downstream ever touches an
// agent that should already be gone.
func (u UseCase) resolveActions(ctx context.Context, r *tickRun) {
	var accepts, raids, spawns, queued []mind.PendingAction
	for _, p := range r.valid {
		switch p.Intent {
		case mind.IntentBondAccept:
			accepts = append(accepts, p)
		case mind.IntentRaid:
			raids = append(raids, p)
		case mind.IntentSpawn:
			spawns = append(spawns, p)
		default:
			queued = append(queued, p)
		}
	}

	u.resolveBonding(ctx, r, accepts)
	u.resolveRaids(r, raids)
	u.resolveSpawns(ctx, r, spawns)

	for _, p := range queued {
		r.w.QueueAction(p)
		if p.Intent == mind.IntentMessage {
			r.report.MessagesQueued++
		}
		r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, TargetID: p.TargetID, Result: mind.ActionQueued})
	}
}

func (u UseCase) resolveBonding(ctx context.Context, r *tickRun, accepts []mind.PendingAction) {
	res := u.Bonding.Resolve(r.w, accepts, r.tick)
	r.report.Actions = append(r.report.Actions, res.Records...)
	for _, b := range res.Formed {
		content := u.generateMission(ctx, r.w, r.tick, b)
		m := u.Lifecycle.Create(r.w, b, content, r.tick)
		r.report.BondsFormed = append(r.report.BondsFormed, mind.BondRecord{
			BondID:    b.ID,
			MemberIDs: append([]string(nil), b.MemberIDs...),
			LeaderID:  b.LeaderID,
			MissionID: m.ID,
		})
		r.report.MissionsCreated = append(r.report.MissionsCreated, mind.MissionRecord{
			MissionID: m.ID,
			BondID:    b.ID,
			Title:     m.Title,
			Goal:      m.Goal,
		})
	}
}

func (u UseCase) resolveRaids(r *tickRun, raids []mind.PendingAction) {
	for _, p := range raids {
		attacker, aOK := r.w.Agent(p.AgentID)
		if !aOK || !attacker.Alive() {
			r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, TargetID: p.TargetID, Result: mind.ActionDropped, Reason: "sender vanished"})
			continue
		}
		defender, dOK := r.w.Agent(p.TargetID)
		if !dOK || !defender.Alive() {
			r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, TargetID: p.TargetID, Result: mind.ActionDropped, Reason: "target vanished"})
			continue
		}

		rec, entries := u.Raiding.Resolve(r.w, r.rng, p.AgentID, p.TargetID, r.tick)
		r.report.Raids = append(r.report.Raids, rec)
		r.ledger = append(r.ledger, entries...)
		if rec.Outcome == mind.RaidRefused {
			r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, TargetID: p.TargetID, Result: mind.ActionRefused, Reason: "insufficient stake"})
			continue
		}
		r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, TargetID: p.TargetID, Result: mind.ActionResolved})

		// A lost stake or a full steal can zero a balance; sweep both parties
		// before the next raid resolves.
		r.sweepIfSpent(p.AgentID, mind.VanishCauseRaid)
		r.sweepIfSpent(p.TargetID, mind.VanishCauseRaid)
	}
}

func (u UseCase) resolveSpawns(ctx context.Context, r *tickRun, spawns []mind.PendingAction) {
	for _, p := range spawns {
		parent, ok := r.w.Agent(p.AgentID)
		if !ok || !parent.Alive() {
			r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, Result: mind.ActionDropped, Reason: "sender vanished"})
			continue
		}
		if r.w.AliveCount() >= r.w.Rules.MaxAgents {
			r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, Result: mind.ActionRefused, Reason: "population cap"})
			continue
		}
		if parent.Sparks < r.w.Rules.SpawnCost {
			r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, Result: mind.ActionRefused, Reason: "insufficient sparks"})
			continue
		}
		profile, err := u.generateCharacter(ctx, r.w.SimulationID)
		if err != nil {
			u.log().Warn("character generator failed, spawn dropped", "simulation_id", r.w.SimulationID, "agent_id", p.AgentID, "tick", r.tick, "error", err)
			r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, Result: mind.ActionDropped, Reason: "character generation failed"})
			continue
		}

		parent.Sparks -= r.w.Rules.SpawnCost
		r.ledger = append(r.ledger, mind.LedgerEntry{
			Source: p.AgentID,
			Amount: r.w.Rules.SpawnCost,
			Reason: mind.ReasonSpawnCost,
			Tick:   r.tick,
		})
		child := r.w.SpawnAgent(profile, r.w.Rules.GenesisSparks, r.tick)
		r.ledger = append(r.ledger, mind.LedgerEntry{
			Destination: child.ID,
			Amount:      r.w.Rules.GenesisSparks,
			Reason:      mind.ReasonGenesis,
			Tick:        r.tick,
		})
		r.report.Spawns = append(r.report.Spawns, mind.SpawnRecord{
			ParentID: p.AgentID,
			ChildID:  child.ID,
			Name:     child.Name,
			Species:  child.Species,
			Cost:     r.w.Rules.SpawnCost,
		})
		r.record(mind.ActionRecord{AgentID: p.AgentID, Intent: p.Intent, Result: mind.ActionResolved})

		// An all-in parent burns out bringing the child into the world.
		r.sweepIfSpent(p.AgentID, mind.VanishCauseSpawn)
	}
}

func (r *tickRun) sweepIfSpent(agentID string, cause mind.VanishCause) {
	a, ok := r.w.Agent(agentID)
	if !ok || !a.Alive() || a.Sparks > 0 {
		return
	}
	a.Sparks = 0
	r.appendVanish(mind.Vanish(r.w, agentID, cause, r.tick))
}

// missionPass evaluates every still-incomplete mission whose bond survived
// the resolution stage, folding the members' actions this tick into progress.
// An evaluator verdict of complete dissolves the bond here, same tick.
func (u UseCase) missionPass(ctx context.Context, r *tickRun) {
	byAgent := map[string][]mind.PendingAction{}
	for _, p := range r.valid {
		byAgent[p.AgentID] = append(byAgent[p.AgentID], p)
	}

	for _, bondID := range r.w.ActiveBondIDs() {
		b, ok := r.w.Bond(bondID)
		if !ok || b.MissionID == "" {
			continue
		}
		m, ok := r.w.Mission(b.MissionID)
		if !ok || m.IsComplete {
			continue
		}

		var actions []mind.PendingAction
		for _, memberID := range b.MemberIDs {
			actions = append(actions, byAgent[memberID]...)
		}
		verdict, ok := u.evaluateProgress(ctx, r.w, r.tick, *m, actions)
		if !ok {
			continue
		}
		res := u.Lifecycle.ApplyProgress(r.w, m, verdict, r.tick)
		r.report.MissionsProgress = append(r.report.MissionsProgress, res.Progress)
		if res.Completed != nil {
			r.report.MissionsCompleted = append(r.report.MissionsCompleted, *res.Completed)
		}
		if res.Dissolved != nil {
			r.report.BondsDissolved = append(r.report.BondsDissolved, *res.Dissolved)
		}
	}
}

// finalize is stage six minus narration: swap the action generations, advance
// the tick counter and take the closing census.
func (u UseCase) finalize(r *tickRun, now time.Time) {
	r.w.SwapBuffers()
	r.w.Tick = r.tick
	r.w.UpdatedAt = now

	r.report.AliveCount = r.w.AliveCount()
	r.report.TotalSparks = r.w.TotalSparks()
	r.report.BenefactorBalance = r.w.Benefactor.Balance
}
