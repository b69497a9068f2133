package mind

import "testing"

func TestVanish_CascadesThroughBondAndMission(t *testing.T) {
	w := newTestWorld()
	seedAgent(w, "M1", 0, 12)
	seedAgent(w, "M2", 6, 3)
	seedAgent(w, "M3", 6, 3)
	b := seedBond(w, "B1", "M1", "M2", "M3")
	MissionService{}.Create(w, b, MissionContent{Title: "dig the well", Goal: "reach water"}, 2)

	res := Vanish(w, "M1", VanishCauseUpkeep, 7)

	if res.Vanished.AgentID != "M1" || res.Vanished.Cause != VanishCauseUpkeep || res.Vanished.Tick != 7 {
		t.Fatalf("unexpected vanish record: %+v", res.Vanished)
	}
	if w.Agents["M1"].Status != StatusVanished || w.Agents["M1"].VanishedTick != 7 {
		t.Fatalf("agent not flagged: %+v", w.Agents["M1"])
	}
	if len(w.Bonds) != 0 {
		t.Fatalf("bond must be deleted the same tick")
	}
	for _, id := range []string{"M2", "M3"} {
		a := w.Agents[id]
		if a.BondStatus != BondStatusUnbonded || a.BondID != "" || len(a.MateIDs) != 0 {
			t.Fatalf("survivor %s keeps stale bond references: %+v", id, a)
		}
	}
	if len(res.BondsDissolved) != 1 || res.BondsDissolved[0].Reason != "member vanished" {
		t.Fatalf("unexpected dissolution records: %+v", res.BondsDissolved)
	}
	if len(res.MissionsCompleted) != 1 {
		t.Fatalf("mission must complete on dissolution: %+v", res.MissionsCompleted)
	}
	m := w.Missions[res.MissionsCompleted[0].MissionID]
	if !m.IsComplete || m.CompletedTick != 7 {
		t.Fatalf("mission not completed: %+v", m)
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("validate after cascade: %v", err)
	}
}

func TestVanish_UnbondedAgentLeavesNoDebris(t *testing.T) {
	w := newTestWorld()
	seedAgent(w, "M1", 0, 4)

	res := Vanish(w, "M1", VanishCauseRaid, 2)

	if res.Vanished.Cause != VanishCauseRaid {
		t.Fatalf("unexpected cause: %+v", res.Vanished)
	}
	if len(res.BondsDissolved) != 0 || len(res.MissionsCompleted) != 0 {
		t.Fatalf("nothing should cascade: %+v", res)
	}
}

func TestVanish_IsIdempotentForVanishedAgents(t *testing.T) {
	w := newTestWorld()
	seedAgent(w, "M1", 0, 4)
	Vanish(w, "M1", VanishCauseUpkeep, 2)

	res := Vanish(w, "M1", VanishCauseUpkeep, 3)
	if res.Vanished.AgentID != "" {
		t.Fatalf("second vanish must be a no-op, got %+v", res)
	}
	if w.Agents["M1"].VanishedTick != 2 {
		t.Fatalf("vanish tick must not move, got %d", w.Agents["M1"].VanishedTick)
	}
}
