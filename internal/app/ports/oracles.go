package ports

import (
	"context"

	"mindverse/internal/domain/mind"
)

// DecisionOracle produces the single action an agent takes this tick, from
// the observation the visibility gateway built for it. A timeout, transport
// error or malformed reply degrades to "no action"; callers never abort a
// tick over it.
type DecisionOracle interface {
	Decide(ctx context.Context, observation mind.Observation) (mind.ActionIntent, error)
}

type BenefactorRequest struct {
	SimulationID string
	Tick         int64
	Balance      int
	GrantCap     int
	Petitions    []mind.GrantPetition
}

// BenefactorOracle decides grant amounts for last tick's petitions. Returned
// amounts are advisory only; the ledger clamps them.
type BenefactorOracle interface {
	DecideGrants(ctx context.Context, req BenefactorRequest) ([]mind.GrantDecision, error)
}

// CharacterGenerator invents one new persona. Called exactly once per agent,
// at genesis and on spawn actions.
type CharacterGenerator interface {
	Generate(ctx context.Context) (mind.CharacterProfile, error)
}

type MissionRequest struct {
	SimulationID string
	Tick         int64
	Members      []mind.Agent
}

type ProgressRequest struct {
	SimulationID string
	Tick         int64
	Mission      mind.Mission
	// Actions are the mission members' actions collected this tick.
	Actions []mind.PendingAction
}

type MissionOracle interface {
	GenerateMission(ctx context.Context, req MissionRequest) (mind.MissionContent, error)
	EvaluateProgress(ctx context.Context, req ProgressRequest) (mind.MissionProgress, error)
}

// Narrator turns a finished tick report into prose. Optional: an error or
// absence leaves the report's narrative empty.
type Narrator interface {
	Narrate(ctx context.Context, report mind.TickReport) (string, error)
}
