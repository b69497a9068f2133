package observe

import (
	"sort"

	"mindverse/internal/app/shared/runway"
	"mindverse/internal/domain/mind"
)

// Build assembles the full observation for one living agent at the tick the
// world is about to process. Everything here reads the frozen generation and
// last tick's settled grants; the current buffer never leaks in, so an agent
// can never see an action queued in the same tick it decides.
func Build(w *mind.World, agentID string) (mind.Observation, error) {
	a, ok := w.Agent(agentID)
	if !ok {
		return mind.Observation{}, ErrAgentNotFound
	}
	if !a.Alive() {
		return mind.Observation{}, ErrAgentVanished
	}

	obs := mind.Observation{
		AgentID:   a.ID,
		Tick:      w.Tick + 1,
		Self:      buildSelf(a),
		Runway:    buildRunway(a, w),
		Directory: buildDirectory(w, a.ID),
		Inbox:     buildInbox(w, a.ID),
		Benefactor: mind.ObservedBenefactor{
			Name:     w.Benefactor.Name,
			Balance:  w.Benefactor.Balance,
			GrantCap: w.Benefactor.GrantCap,
		},
		Rules: mind.ObservedRules{
			UpkeepPerTick: w.Rules.UpkeepPerTick,
			SpawnCost:     w.Rules.SpawnCost,
			RaidStealMax:  w.Rules.RaidStealMax,
			GrantCap:      w.Benefactor.GrantCap,
		},
	}

	if a.BondID != "" {
		if b, ok := w.Bond(a.BondID); ok {
			obs.Bond = buildBond(b)
			if m, ok := w.Mission(b.MissionID); ok {
				obs.Mission = buildMission(m)
			}
		}
	}
	return obs, nil
}

func buildSelf(a *mind.Agent) mind.SelfView {
	mates := append([]string(nil), a.MateIDs...)
	sort.Strings(mates)
	return mind.SelfView{
		ID:          a.ID,
		Name:        a.Name,
		Species:     a.Species,
		Personality: a.Personality,
		Backstory:   a.Backstory,
		Sparks:      a.Sparks,
		Age:         a.Age,
		BondStatus:  a.BondStatus,
		MateIDs:     mates,
	}
}

func buildBond(b *mind.Bond) *mind.ObservedBond {
	members := append([]string(nil), b.MemberIDs...)
	sort.Strings(members)
	return &mind.ObservedBond{
		ID:                      b.ID,
		MemberIDs:               members,
		LeaderID:                b.LeaderID,
		SparksGeneratedLastTick: b.SparksGeneratedThisTick,
		CreatedTick:             b.CreatedTick,
	}
}

func buildMission(m *mind.Mission) *mind.ObservedMission {
	return &mind.ObservedMission{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Goal:        m.Goal,
		Progress:    m.Progress,
		Tasks:       m.Tasks,
	}
}

func buildRunway(a *mind.Agent, w *mind.World) mind.RunwayView {
	bondSize := 0
	if a.BondID != "" {
		if b, ok := w.Bond(a.BondID); ok {
			bondSize = len(b.MemberIDs)
		}
	}
	est := runway.ForAgent(*a, bondSize, w.Rules)
	return mind.RunwayView{
		NetPerTick:     est.NetPerTick,
		TicksRemaining: est.TicksRemaining,
		Sustainable:    est.Sustainable,
		Causes:         est.Causes,
	}
}

// buildDirectory lists every other living agent so oracles can pick bond and
// raid targets by real id instead of hallucinating one.
func buildDirectory(w *mind.World, selfID string) []mind.DirectoryEntry {
	out := []mind.DirectoryEntry{}
	for _, id := range w.AliveAgentIDs() {
		if id == selfID {
			continue
		}
		other, _ := w.Agent(id)
		out = append(out, mind.DirectoryEntry{
			ID:         other.ID,
			Name:       other.Name,
			Species:    other.Species,
			Sparks:     other.Sparks,
			Age:        other.Age,
			BondStatus: other.BondStatus,
		})
	}
	return out
}

func buildInbox(w *mind.World, agentID string) mind.Inbox {
	inbox := mind.Inbox{}
	for _, p := range w.FrozenRequestsFor(agentID) {
		inbox.BondRequests = append(inbox.BondRequests, toInboxItem(w, p))
	}
	for _, p := range w.FrozenMessagesFor(agentID) {
		inbox.Messages = append(inbox.Messages, toInboxItem(w, p))
	}
	for _, g := range w.GrantOutcomes {
		if g.AgentID == agentID {
			inbox.GrantOutcomes = append(inbox.GrantOutcomes, g)
		}
	}
	return inbox
}

func toInboxItem(w *mind.World, p mind.PendingAction) mind.InboxItem {
	item := mind.InboxItem{FromID: p.AgentID, Content: p.Content, Tick: p.Tick}
	if sender, ok := w.Agent(p.AgentID); ok {
		item.FromName = sender.Name
	}
	return item
}
