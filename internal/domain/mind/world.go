package mind

import (
	"fmt"
	"sort"
	"time"
)

type Counters struct {
	Agent   int64 `json:"agent"`
	Bond    int64 `json:"bond"`
	Mission int64 `json:"mission"`
}

// World is the whole entity model for one simulation: every table the tick
// orchestrator mutates lives here, and nothing outside a tick call may write
// it. Current collects the actions queued during the tick in progress; Frozen
// is the read-only previous generation observations are built from. The two
// are swapped at the tick boundary, which is the entire one-tick delay
// mechanism.
type World struct {
	SimulationID string `json:"simulation_id"`
	Name         string `json:"name"`
	// Tick is the last fully completed tick; a tick call processes Tick+1.
	Tick int64 `json:"tick"`
	Seed int64 `json:"seed"`

	Agents   map[string]*Agent   `json:"agents"`
	Bonds    map[string]*Bond    `json:"bonds"`
	Missions map[string]*Mission `json:"missions"`

	Benefactor Benefactor `json:"benefactor"`

	Current []PendingAction `json:"current_actions,omitempty"`
	Frozen  []PendingAction `json:"frozen_actions,omitempty"`

	// GrantOutcomes holds the grants settled during the newest completed tick.
	// They ride along with Frozen: both feed the observations for Tick+1.
	GrantOutcomes []GrantOutcome `json:"grant_outcomes,omitempty"`

	Rules    Rules    `json:"rules"`
	Counters Counters `json:"counters"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewWorld(simulationID, name string, seed int64, rules Rules, benefactor Benefactor, now time.Time) *World {
	return &World{
		SimulationID: simulationID,
		Name:         name,
		Seed:         seed,
		Agents:       map[string]*Agent{},
		Bonds:        map[string]*Bond{},
		Missions:     map[string]*Mission{},
		Benefactor:   benefactor,
		Rules:        rules,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (w *World) NextAgentID() string {
	w.Counters.Agent++
	return fmt.Sprintf("M%06d", w.Counters.Agent)
}

func (w *World) NextBondID() string {
	w.Counters.Bond++
	return fmt.Sprintf("B%06d", w.Counters.Bond)
}

func (w *World) NextMissionID() string {
	w.Counters.Mission++
	return fmt.Sprintf("Q%06d", w.Counters.Mission)
}

// SpawnAgent creates an alive, unbonded agent from a generated profile and
// registers it in the world.
func (w *World) SpawnAgent(profile CharacterProfile, sparks int, bornTick int64) *Agent {
	a := &Agent{
		ID:          w.NextAgentID(),
		Name:        profile.Name,
		Species:     profile.Species,
		Personality: profile.Personality,
		Backstory:   profile.Backstory,
		Sparks:      sparks,
		Status:      StatusAlive,
		BondStatus:  BondStatusUnbonded,
		BornTick:    bornTick,
	}
	w.Agents[a.ID] = a
	return a
}

func (w *World) Agent(id string) (*Agent, bool) {
	a, ok := w.Agents[id]
	return a, ok
}

func (w *World) Bond(id string) (*Bond, bool) {
	b, ok := w.Bonds[id]
	return b, ok
}

func (w *World) Mission(id string) (*Mission, bool) {
	m, ok := w.Missions[id]
	return m, ok
}

// AliveAgentIDs returns living agents in sorted id order. Every loop whose
// outcome can reach the report or the RNG iterates in this order; map order
// must never leak into results.
func (w *World) AliveAgentIDs() []string {
	ids := make([]string, 0, len(w.Agents))
	for id, a := range w.Agents {
		if a.Alive() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (w *World) ActiveBondIDs() []string {
	ids := make([]string, 0, len(w.Bonds))
	for id := range w.Bonds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (w *World) AliveCount() int {
	n := 0
	for _, a := range w.Agents {
		if a.Alive() {
			n++
		}
	}
	return n
}

func (w *World) VanishedCount() int {
	return len(w.Agents) - w.AliveCount()
}

func (w *World) ActiveMissionCount() int {
	n := 0
	for _, m := range w.Missions {
		if !m.IsComplete {
			n++
		}
	}
	return n
}

// TotalSparks sums the balances of living agents. Vanished agents always hold
// zero or less and are out of the economy.
func (w *World) TotalSparks() int {
	total := 0
	for _, a := range w.Agents {
		if a.Alive() {
			total += a.Sparks
		}
	}
	return total
}

func (w *World) QueueAction(p PendingAction) {
	w.Current = append(w.Current, p)
}

// SwapBuffers promotes the current action generation to frozen and opens an
// empty generation for the next tick. Unconsumed bond requests in the old
// frozen generation are discarded here, which is exactly their one tick of
// visibility expiring.
func (w *World) SwapBuffers() {
	w.Frozen = w.Current
	w.Current = nil
}

// FrozenRequestsFor returns the bond requests visible to recipient this tick:
// queued last tick, addressed to it, sender named.
func (w *World) FrozenRequestsFor(recipientID string) []PendingAction {
	var out []PendingAction
	for _, p := range w.Frozen {
		if p.Intent == IntentBondRequest && p.TargetID == recipientID {
			out = append(out, p)
		}
	}
	return out
}

func (w *World) FrozenMessagesFor(recipientID string) []PendingAction {
	var out []PendingAction
	for _, p := range w.Frozen {
		if p.Intent == IntentMessage && p.TargetID == recipientID {
			out = append(out, p)
		}
	}
	return out
}

// FrozenGrantPetitions returns last tick's grant requests in submission order.
func (w *World) FrozenGrantPetitions() []GrantPetition {
	var out []GrantPetition
	for _, p := range w.Frozen {
		if p.Intent != IntentRequestGrant {
			continue
		}
		out = append(out, GrantPetition{AgentID: p.AgentID, Content: p.Content, Tick: p.Tick})
	}
	return out
}

// HasFrozenRequest reports whether requester asked recipient for a bond in the
// frozen generation. Frozen actions are by construction from a strictly
// earlier tick, which is the §bonding validity requirement.
func (w *World) HasFrozenRequest(requesterID, recipientID string) bool {
	for _, p := range w.Frozen {
		if p.Intent == IntentBondRequest && p.AgentID == requesterID && p.TargetID == recipientID {
			return true
		}
	}
	return false
}

// Validate walks the cross-references the tick stages must keep intact. Any
// error here means the engine itself misordered a stage; callers treat it as
// fatal, not as user input to tolerate.
func (w *World) Validate() error {
	for id, a := range w.Agents {
		if a.ID != id {
			return fmt.Errorf("agent %s stored under key %s", a.ID, id)
		}
		if a.Status == StatusVanished {
			if a.BondID != "" || len(a.MateIDs) != 0 {
				return fmt.Errorf("vanished agent %s still bonded", id)
			}
			continue
		}
		if a.Sparks < 0 {
			return fmt.Errorf("alive agent %s has negative sparks %d", id, a.Sparks)
		}
		switch a.BondStatus {
		case BondStatusUnbonded:
			if a.BondID != "" || len(a.MateIDs) != 0 {
				return fmt.Errorf("unbonded agent %s carries bond references", id)
			}
		case BondStatusBonded, BondStatusLeader:
			b, ok := w.Bonds[a.BondID]
			if !ok {
				return fmt.Errorf("agent %s references missing bond %s", id, a.BondID)
			}
			if !b.HasMember(id) {
				return fmt.Errorf("agent %s not a member of its bond %s", id, a.BondID)
			}
			if a.BondStatus == BondStatusLeader && b.LeaderID != id {
				return fmt.Errorf("agent %s flagged leader of bond %s led by %s", id, a.BondID, b.LeaderID)
			}
			if len(a.MateIDs) != len(b.MemberIDs)-1 {
				return fmt.Errorf("agent %s mate set size %d for bond of %d", id, len(a.MateIDs), len(b.MemberIDs))
			}
			for _, mate := range a.MateIDs {
				if mate == id || !b.HasMember(mate) {
					return fmt.Errorf("agent %s has stray mate %s", id, mate)
				}
			}
		default:
			return fmt.Errorf("agent %s has unknown bond status %q", id, a.BondStatus)
		}
	}
	for id, b := range w.Bonds {
		if len(b.MemberIDs) < 2 {
			return fmt.Errorf("bond %s has %d members", id, len(b.MemberIDs))
		}
		if !b.HasMember(b.LeaderID) {
			return fmt.Errorf("bond %s leader %s is not a member", id, b.LeaderID)
		}
		for _, memberID := range b.MemberIDs {
			a, ok := w.Agents[memberID]
			if !ok {
				return fmt.Errorf("bond %s references missing agent %s", id, memberID)
			}
			if !a.Alive() {
				return fmt.Errorf("bond %s holds vanished member %s", id, memberID)
			}
			if a.BondID != id {
				return fmt.Errorf("bond %s member %s not flagged into it", id, memberID)
			}
		}
		if b.MissionID != "" {
			if _, ok := w.Missions[b.MissionID]; !ok {
				return fmt.Errorf("bond %s references missing mission %s", id, b.MissionID)
			}
		}
	}
	for id, m := range w.Missions {
		if m.IsComplete {
			continue
		}
		b, ok := w.Bonds[m.BondID]
		if !ok {
			return fmt.Errorf("in-progress mission %s references deleted bond %s", id, m.BondID)
		}
		if b.MissionID != id {
			return fmt.Errorf("mission %s not referenced back by bond %s", id, m.BondID)
		}
	}
	if w.Benefactor.Balance < 0 {
		return fmt.Errorf("benefactor balance %d is negative", w.Benefactor.Balance)
	}
	for _, p := range w.Current {
		if p.Tick != w.Tick+1 && p.Tick != w.Tick {
			return fmt.Errorf("current buffer holds action from tick %d at world tick %d", p.Tick, w.Tick)
		}
	}
	for _, p := range w.Frozen {
		if p.Tick > w.Tick {
			return fmt.Errorf("frozen buffer holds action from future tick %d at world tick %d", p.Tick, w.Tick)
		}
	}
	return nil
}
