package mind

import "testing"

func TestMissionService_CreateLinksBondAndMission(t *testing.T) {
	w := newTestWorld()
	seedAgent(w, "M1", 5, 0)
	seedAgent(w, "M2", 5, 0)
	b := seedBond(w, "B1", "M1", "M2")

	m := MissionService{}.Create(w, b, MissionContent{
		Title:       "map the hollow",
		Description: "the eastern hollow is uncharted",
		Goal:        "return with a full map",
		Tasks:       map[string]string{"M1": "walk the rim", "M2": "sketch"},
	}, 4)

	if m.ID != "Q000001" {
		t.Fatalf("unexpected mission id %s", m.ID)
	}
	if b.MissionID != m.ID {
		t.Fatalf("bond must point at its mission")
	}
	if m.LeaderID != b.LeaderID || m.BondID != b.ID || m.CreatedTick != 4 {
		t.Fatalf("mission fields wrong: %+v", m)
	}
	if m.IsComplete {
		t.Fatalf("new mission must start in progress")
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestMissionService_ProgressUpdatesWithoutCompletion(t *testing.T) {
	w := newTestWorld()
	seedAgent(w, "M1", 5, 0)
	seedAgent(w, "M2", 5, 0)
	b := seedBond(w, "B1", "M1", "M2")
	m := MissionService{}.Create(w, b, MissionContent{Title: "t", Goal: "g"}, 1)

	res := MissionService{}.ApplyProgress(w, m, MissionProgress{
		Summary: "first stones laid",
		Tasks:   map[string]string{"M1": "haul", "M2": "stack"},
	}, 2)

	if res.Completed != nil || res.Dissolved != nil {
		t.Fatalf("nothing should complete: %+v", res)
	}
	if m.Progress != "first stones laid" || m.Tasks["M1"] != "haul" {
		t.Fatalf("progress not applied: %+v", m)
	}
	if _, ok := w.Bonds["B1"]; !ok {
		t.Fatalf("bond must survive an in-progress verdict")
	}
}

func TestMissionService_CompletionDissolvesBond(t *testing.T) {
	w := newTestWorld()
	seedAgent(w, "M1", 5, 0)
	seedAgent(w, "M2", 5, 0)
	b := seedBond(w, "B1", "M1", "M2")
	m := MissionService{}.Create(w, b, MissionContent{Title: "t", Goal: "g"}, 1)

	res := MissionService{}.ApplyProgress(w, m, MissionProgress{IsComplete: true, Summary: "done"}, 6)

	if res.Completed == nil || res.Dissolved == nil {
		t.Fatalf("expected completion and dissolution: %+v", res)
	}
	if !m.IsComplete || m.CompletedTick != 6 {
		t.Fatalf("mission not completed: %+v", m)
	}
	if len(w.Bonds) != 0 {
		t.Fatalf("bond must dissolve when the goal is met")
	}
	for _, id := range []string{"M1", "M2"} {
		if w.Agents[id].BondStatus != BondStatusUnbonded {
			t.Fatalf("%s must return to unbonded life", id)
		}
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestMissionService_CompleteMissionIsImmutable(t *testing.T) {
	w := newTestWorld()
	seedAgent(w, "M1", 5, 0)
	seedAgent(w, "M2", 5, 0)
	b := seedBond(w, "B1", "M1", "M2")
	m := MissionService{}.Create(w, b, MissionContent{Title: "t", Goal: "g"}, 1)
	MissionService{}.ApplyProgress(w, m, MissionProgress{IsComplete: true, Summary: "done"}, 2)

	res := MissionService{}.ApplyProgress(w, m, MissionProgress{Summary: "late edit"}, 3)

	if res.Progress.MissionID != "" {
		t.Fatalf("verdict against a complete mission must be ignored: %+v", res)
	}
	if m.Progress != "done" || m.CompletedTick != 2 {
		t.Fatalf("complete mission mutated: %+v", m)
	}
}
