package oracle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

type fakeCompleter struct {
	reply  string
	err    error
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var _ Completer = (*fakeCompleter)(nil)

func TestSet_DecodesDecision(t *testing.T) {
	c := &fakeCompleter{reply: `{"intent":"raid","target_id":"M000002","reasoning":"weak and rich"}`}
	s := NewSet(c)

	got, err := s.Decide(context.Background(), mind.Observation{
		AgentID: "M000001",
		Tick:    3,
		Self:    mind.SelfView{ID: "M000001", Name: "Aster", Sparks: 8},
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Intent != mind.IntentRaid || got.TargetID != "M000002" {
		t.Fatalf("decoded %+v", got)
	}
	if !strings.Contains(c.user, `"agent_id":"M000001"`) {
		t.Fatalf("observation not passed through, user = %s", c.user)
	}
	if !strings.Contains(c.system, "exactly one action") {
		t.Fatalf("wrong system prompt routed")
	}
}

func TestSet_StripsMarkdownFences(t *testing.T) {
	c := &fakeCompleter{reply: "```json\n{\"intent\":\"idle\"}\n```"}
	s := NewSet(c)

	got, err := s.Decide(context.Background(), mind.Observation{AgentID: "M000001", Tick: 1})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if got.Intent != mind.IntentIdle {
		t.Fatalf("intent = %q, want idle", got.Intent)
	}
}

func TestSet_RejectsUnknownIntent(t *testing.T) {
	c := &fakeCompleter{reply: `{"intent":"attack","target_id":"M000002"}`}
	s := NewSet(c)

	if _, err := s.Decide(context.Background(), mind.Observation{AgentID: "M000001", Tick: 1}); err == nil {
		t.Fatalf("unknown intent should fail the reply")
	}
}

func TestSet_RejectsProseReply(t *testing.T) {
	c := &fakeCompleter{reply: "I believe I shall raid M000002 this tick."}
	s := NewSet(c)

	if _, err := s.Decide(context.Background(), mind.Observation{AgentID: "M000001", Tick: 1}); err == nil {
		t.Fatalf("prose reply should fail")
	}
}

func TestSet_PropagatesCompleterError(t *testing.T) {
	boom := errors.New("transport down")
	s := NewSet(&fakeCompleter{err: boom})

	if _, err := s.Decide(context.Background(), mind.Observation{AgentID: "M000001", Tick: 1}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped transport error", err)
	}
}

func TestSet_DecodesGrants(t *testing.T) {
	c := &fakeCompleter{reply: `{"grants":[{"agent_id":"M000003","amount":4,"reasoning":"two ticks from the dark"}]}`}
	s := NewSet(c)

	got, err := s.DecideGrants(context.Background(), ports.BenefactorRequest{
		SimulationID: "sim-1",
		Tick:         5,
		Balance:      60,
		GrantCap:     5,
		Petitions:    []mind.GrantPetition{{AgentID: "M000003", Content: "please", Tick: 4}},
	})
	if err != nil {
		t.Fatalf("DecideGrants: %v", err)
	}
	if len(got) != 1 || got[0].AgentID != "M000003" || got[0].Amount != 4 {
		t.Fatalf("decisions = %+v", got)
	}
	if !strings.Contains(c.user, `"grant_cap":5`) {
		t.Fatalf("cap not passed through, user = %s", c.user)
	}
}

func TestSet_RejectsGrantWithoutAmount(t *testing.T) {
	c := &fakeCompleter{reply: `{"grants":[{"agent_id":"M000003"}]}`}
	s := NewSet(c)

	if _, err := s.DecideGrants(context.Background(), ports.BenefactorRequest{Tick: 1}); err == nil {
		t.Fatalf("grant without amount should fail the reply")
	}
}

func TestSet_DecodesCharacter(t *testing.T) {
	c := &fakeCompleter{reply: `{"name":"Tindle","species":"moth","personality":["wary","devout"],"backstory":"Hatched in a dead bond's archive."}`}
	s := NewSet(c)

	got, err := s.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got.Name != "Tindle" || got.Species != "moth" || len(got.Personality) != 2 {
		t.Fatalf("profile = %+v", got)
	}
}

func TestSet_RejectsNamelessCharacter(t *testing.T) {
	c := &fakeCompleter{reply: `{"species":"moth"}`}
	s := NewSet(c)

	if _, err := s.Generate(context.Background()); err == nil {
		t.Fatalf("nameless character should fail the reply")
	}
}

func TestSet_DecodesMissionAndProgress(t *testing.T) {
	c := &fakeCompleter{reply: `{"title":"Hold the Line","goal":"survive ten ticks","tasks":{"M000001":"watch the door"}}`}
	s := NewSet(c)

	content, err := s.GenerateMission(context.Background(), ports.MissionRequest{
		Tick:    2,
		Members: []mind.Agent{{ID: "M000001", Name: "Aster"}},
	})
	if err != nil {
		t.Fatalf("GenerateMission: %v", err)
	}
	if content.Title != "Hold the Line" || content.Tasks["M000001"] == "" {
		t.Fatalf("content = %+v", content)
	}

	c.reply = `{"is_complete":true,"summary":"The line held.","tasks":{"M000001":"done"}}`
	progress, err := s.EvaluateProgress(context.Background(), ports.ProgressRequest{
		Tick:    7,
		Mission: mind.Mission{ID: "Q000001", CreatedTick: 2},
	})
	if err != nil {
		t.Fatalf("EvaluateProgress: %v", err)
	}
	if !progress.IsComplete || progress.Summary == "" {
		t.Fatalf("progress = %+v", progress)
	}
}

func TestSet_UnwrapsNarrative(t *testing.T) {
	c := &fakeCompleter{reply: `{"narrative":"Nothing vanished. Everyone counted their sparks twice."}`}
	s := NewSet(c)

	got, err := s.Narrate(context.Background(), mind.TickReport{SimulationID: "sim-1", Tick: 4})
	if err != nil {
		t.Fatalf("Narrate: %v", err)
	}
	if !strings.Contains(got, "counted their sparks") {
		t.Fatalf("narrative = %q", got)
	}
}
