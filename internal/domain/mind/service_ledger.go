package mind

import (
	"math/rand/v2"
	"sort"
)

type LedgerService struct{}

type UpkeepResult struct {
	Entries  []LedgerEntry
	Vanishes []VanishResult
}

// ApplyUpkeep charges every living agent the per-tick upkeep and adds one age.
// Agents driven to zero or below vanish here, before minting runs, so a dying
// agent can never collect that tick's bond income.
func (LedgerService) ApplyUpkeep(w *World, tick int64) UpkeepResult {
	var res UpkeepResult
	for _, id := range w.AliveAgentIDs() {
		a := w.Agents[id]
		a.Sparks -= w.Rules.UpkeepPerTick
		a.Age++
		res.Entries = append(res.Entries, LedgerEntry{
			Source: id,
			Amount: w.Rules.UpkeepPerTick,
			Reason: ReasonUpkeep,
			Tick:   tick,
		})
		if a.Sparks <= 0 {
			a.Sparks = 0
			res.Vanishes = append(res.Vanishes, Vanish(w, id, VanishCauseUpkeep, tick))
		}
	}
	return res
}

// MintBondIncome generates |members| sparks per active bond and hands each
// unit to a member drawn uniformly with replacement. One member may collect
// several units while another collects none; only the total is guaranteed.
func (LedgerService) MintBondIncome(w *World, rng *rand.Rand, tick int64) []LedgerEntry {
	var entries []LedgerEntry
	for _, bondID := range w.ActiveBondIDs() {
		b := w.Bonds[bondID]
		members := append([]string(nil), b.MemberIDs...)
		sort.Strings(members)
		b.SparksGeneratedThisTick = 0
		for i := 0; i < len(members); i++ {
			target := members[rng.IntN(len(members))]
			a, ok := w.Agents[target]
			if !ok || !a.Alive() {
				continue
			}
			a.Sparks++
			b.SparksGeneratedThisTick++
			entries = append(entries, LedgerEntry{
				Destination: target,
				Amount:      1,
				Reason:      ReasonMint,
				Tick:        tick,
			})
		}
	}
	return entries
}

// ApplyGrants settles the benefactor's decisions over last tick's petitions.
// Decisions are advisory: each amount is clamped to [0, cap] and to the
// remaining balance at the moment of granting, petition order. Petitioners
// the oracle ignored still get a zero outcome so the refusal is observable.
func (LedgerService) ApplyGrants(w *World, petitions []GrantPetition, decisions []GrantDecision, tick int64) ([]GrantOutcome, []LedgerEntry) {
	decided := make(map[string]GrantDecision, len(decisions))
	for _, d := range decisions {
		decided[d.AgentID] = d
	}

	var outcomes []GrantOutcome
	var entries []LedgerEntry
	seen := map[string]bool{}
	for _, pet := range petitions {
		if seen[pet.AgentID] {
			continue
		}
		seen[pet.AgentID] = true

		outcome := GrantOutcome{AgentID: pet.AgentID, Requested: true, Tick: tick}
		d, ok := decided[pet.AgentID]
		if ok {
			outcome.Reasoning = d.Reasoning
		}
		amount := 0
		if ok {
			amount = d.Amount
		}
		if amount < 0 {
			amount = 0
		}
		if amount > w.Benefactor.GrantCap {
			amount = w.Benefactor.GrantCap
		}
		if amount > w.Benefactor.Balance {
			amount = w.Benefactor.Balance
		}
		a, alive := w.Agents[pet.AgentID]
		if !alive || !a.Alive() {
			amount = 0
		}
		if amount > 0 {
			a.Sparks += amount
			w.Benefactor.Balance -= amount
			entries = append(entries, LedgerEntry{
				Source:      w.Benefactor.Name,
				Destination: pet.AgentID,
				Amount:      amount,
				Reason:      ReasonGrant,
				Tick:        tick,
			})
		}
		outcome.Granted = amount
		outcomes = append(outcomes, outcome)
	}
	return outcomes, entries
}

// Regenerate tops the benefactor pool up by its fixed rate. Runs every tick
// whether or not anyone petitioned.
func (LedgerService) Regenerate(w *World, tick int64) LedgerEntry {
	w.Benefactor.Balance += w.Benefactor.RegenPerTick
	return LedgerEntry{
		Destination: w.Benefactor.Name,
		Amount:      w.Benefactor.RegenPerTick,
		Reason:      ReasonRegen,
		Tick:        tick,
	}
}
