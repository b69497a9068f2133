// Package oracle adapts chat-completion model providers to the simulation's
// oracle contracts. Vendor packages supply a Completer; this package owns the
// prompts, the reply schemas and the decoding, so every provider speaks the
// same JSON dialect and fails the same way.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

// Completer is one round trip to a model: a system prompt, a user payload,
// a raw text reply. Implementations decide transport, model and timeout.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Set implements all five oracle contracts over one Completer. Every reply
// is schema-checked before it is trusted; a violation surfaces as an error
// and the engine degrades the call like any other oracle failure.
type Set struct {
	c Completer
}

func NewSet(c Completer) *Set { return &Set{c: c} }

var (
	_ ports.DecisionOracle     = (*Set)(nil)
	_ ports.BenefactorOracle   = (*Set)(nil)
	_ ports.CharacterGenerator = (*Set)(nil)
	_ ports.MissionOracle      = (*Set)(nil)
	_ ports.Narrator           = (*Set)(nil)
)

func (s *Set) Decide(ctx context.Context, obs mind.Observation) (mind.ActionIntent, error) {
	user, err := json.Marshal(obs)
	if err != nil {
		return mind.ActionIntent{}, fmt.Errorf("encode observation: %w", err)
	}
	raw, err := s.c.Complete(ctx, decisionSystemPrompt, string(user))
	if err != nil {
		return mind.ActionIntent{}, err
	}
	var intent mind.ActionIntent
	if err := decodeReply(decisionSchema, raw, &intent); err != nil {
		return mind.ActionIntent{}, err
	}
	return intent, nil
}

func (s *Set) DecideGrants(ctx context.Context, req ports.BenefactorRequest) ([]mind.GrantDecision, error) {
	user, err := json.Marshal(benefactorPayload{
		Tick:      req.Tick,
		Balance:   req.Balance,
		GrantCap:  req.GrantCap,
		Petitions: req.Petitions,
	})
	if err != nil {
		return nil, fmt.Errorf("encode petitions: %w", err)
	}
	raw, err := s.c.Complete(ctx, benefactorSystemPrompt, string(user))
	if err != nil {
		return nil, err
	}
	var reply grantsReply
	if err := decodeReply(grantsSchema, raw, &reply); err != nil {
		return nil, err
	}
	return reply.Grants, nil
}

func (s *Set) Generate(ctx context.Context) (mind.CharacterProfile, error) {
	raw, err := s.c.Complete(ctx, characterSystemPrompt, "Invent one persona now.")
	if err != nil {
		return mind.CharacterProfile{}, err
	}
	var profile mind.CharacterProfile
	if err := decodeReply(characterSchema, raw, &profile); err != nil {
		return mind.CharacterProfile{}, err
	}
	return profile, nil
}

func (s *Set) GenerateMission(ctx context.Context, req ports.MissionRequest) (mind.MissionContent, error) {
	user, err := json.Marshal(missionPayload{Tick: req.Tick, Members: req.Members})
	if err != nil {
		return mind.MissionContent{}, fmt.Errorf("encode members: %w", err)
	}
	raw, err := s.c.Complete(ctx, missionSystemPrompt, string(user))
	if err != nil {
		return mind.MissionContent{}, err
	}
	var content mind.MissionContent
	if err := decodeReply(missionSchema, raw, &content); err != nil {
		return mind.MissionContent{}, err
	}
	return content, nil
}

func (s *Set) EvaluateProgress(ctx context.Context, req ports.ProgressRequest) (mind.MissionProgress, error) {
	user, err := json.Marshal(progressPayload{Tick: req.Tick, Mission: req.Mission, Actions: req.Actions})
	if err != nil {
		return mind.MissionProgress{}, fmt.Errorf("encode progress request: %w", err)
	}
	raw, err := s.c.Complete(ctx, progressSystemPrompt, string(user))
	if err != nil {
		return mind.MissionProgress{}, err
	}
	var progress mind.MissionProgress
	if err := decodeReply(progressSchema, raw, &progress); err != nil {
		return mind.MissionProgress{}, err
	}
	return progress, nil
}

func (s *Set) Narrate(ctx context.Context, report mind.TickReport) (string, error) {
	user, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	raw, err := s.c.Complete(ctx, narratorSystemPrompt, string(user))
	if err != nil {
		return "", err
	}
	var reply narrativeReply
	if err := decodeReply(narrativeSchema, raw, &reply); err != nil {
		return "", err
	}
	return reply.Narrative, nil
}

// decodeReply checks a raw model reply against the expected schema before
// unmarshalling. Anything short of valid JSON in the agreed shape is an
// error; the engine treats it like a timeout.
func decodeReply(schema *jsonschema.Schema, raw string, v any) error {
	raw = stripFences(raw)
	var probe any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return fmt.Errorf("oracle reply is not JSON: %w", err)
	}
	if err := schema.Validate(probe); err != nil {
		return fmt.Errorf("oracle reply rejected by schema: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode oracle reply: %w", err)
	}
	return nil
}

// stripFences removes a markdown code fence around a reply. Models add them
// despite the JSON-only instruction.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
