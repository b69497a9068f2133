package tick

import (
	"context"
	"fmt"
	"strings"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

// Every oracle call in a tick goes through one of these wrappers: bounded by
// the configured timeout, outcome recorded in metrics, failure degraded to a
// safe default. A broken oracle slows a tick down, it never aborts one.

func (u UseCase) oracleCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.OracleTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.OracleTimeout)
}

func (u UseCase) recordOracle(simulationID, oracle string, ok bool) {
	if u.Metrics != nil {
		u.Metrics.RecordOracle(simulationID, oracle, ok)
	}
}

// decideOne asks the decision oracle for one agent's action. Absence, error
// or timeout all degrade to idle.
func (u UseCase) decideOne(ctx context.Context, simulationID string, obs mind.Observation) (mind.ActionIntent, bool) {
	if u.Decisions == nil {
		return mind.ActionIntent{Intent: mind.IntentIdle}, true
	}
	cctx, cancel := u.oracleCtx(ctx)
	defer cancel()
	intent, err := u.Decisions.Decide(cctx, obs)
	if err != nil {
		u.recordOracle(simulationID, "decision", false)
		u.log().Warn("decision oracle failed", "simulation_id", simulationID, "agent_id", obs.AgentID, "tick", obs.Tick, "error", err)
		return mind.ActionIntent{}, false
	}
	u.recordOracle(simulationID, "decision", true)
	intent.TargetID = strings.TrimSpace(intent.TargetID)
	return intent, true
}

// decideGrants asks the benefactor oracle to judge last tick's petitions. On
// failure every petition settles to zero, which the petitioner can observe.
func (u UseCase) decideGrants(ctx context.Context, w *mind.World, tickNo int64, petitions []mind.GrantPetition) []mind.GrantDecision {
	if u.Benefactor == nil || len(petitions) == 0 {
		return nil
	}
	cctx, cancel := u.oracleCtx(ctx)
	defer cancel()
	decisions, err := u.Benefactor.DecideGrants(cctx, ports.BenefactorRequest{
		SimulationID: w.SimulationID,
		Tick:         tickNo,
		Balance:      w.Benefactor.Balance,
		GrantCap:     w.Benefactor.GrantCap,
		Petitions:    petitions,
	})
	if err != nil {
		u.recordOracle(w.SimulationID, "benefactor", false)
		u.log().Warn("benefactor oracle failed", "simulation_id", w.SimulationID, "tick", tickNo, "error", err)
		return nil
	}
	u.recordOracle(w.SimulationID, "benefactor", true)
	return decisions
}

// generateCharacter invents a persona for a spawn action. No fallback here:
// the spawn is dropped without charging the parent when the generator fails.
func (u UseCase) generateCharacter(ctx context.Context, simulationID string) (mind.CharacterProfile, error) {
	if u.Characters == nil {
		return mind.CharacterProfile{}, fmt.Errorf("no character generator configured")
	}
	cctx, cancel := u.oracleCtx(ctx)
	defer cancel()
	profile, err := u.Characters.Generate(cctx)
	if err != nil {
		u.recordOracle(simulationID, "character", false)
		return mind.CharacterProfile{}, err
	}
	if strings.TrimSpace(profile.Name) == "" {
		u.recordOracle(simulationID, "character", false)
		return mind.CharacterProfile{}, fmt.Errorf("character generator returned empty name")
	}
	u.recordOracle(simulationID, "character", true)
	return profile, nil
}

// generateMission produces content for a freshly formed bond. Bond formation
// must never fail over content, so errors fall back to a plain template.
func (u UseCase) generateMission(ctx context.Context, w *mind.World, tickNo int64, b *mind.Bond) mind.MissionContent {
	fallback := mind.MissionContent{
		Title:       fmt.Sprintf("Pact of %d minds", len(b.MemberIDs)),
		Description: "A mutual promise to keep every member's flame lit.",
		Goal:        "outlast ten more ticks together",
	}
	if u.Missions == nil {
		return fallback
	}
	members := make([]mind.Agent, 0, len(b.MemberIDs))
	for _, id := range b.MemberIDs {
		if a, ok := w.Agent(id); ok {
			members = append(members, *a)
		}
	}
	cctx, cancel := u.oracleCtx(ctx)
	defer cancel()
	content, err := u.Missions.GenerateMission(cctx, ports.MissionRequest{
		SimulationID: w.SimulationID,
		Tick:         tickNo,
		Members:      members,
	})
	if err != nil || strings.TrimSpace(content.Title) == "" {
		u.recordOracle(w.SimulationID, "mission", false)
		u.log().Warn("mission generator failed, using fallback", "simulation_id", w.SimulationID, "bond_id", b.ID, "error", err)
		return fallback
	}
	u.recordOracle(w.SimulationID, "mission", true)
	return content
}

// evaluateProgress asks the evaluator to judge one mission against the
// members' actions this tick. A failure leaves the mission untouched.
func (u UseCase) evaluateProgress(ctx context.Context, w *mind.World, tickNo int64, m mind.Mission, actions []mind.PendingAction) (mind.MissionProgress, bool) {
	if u.Missions == nil {
		return mind.MissionProgress{}, false
	}
	cctx, cancel := u.oracleCtx(ctx)
	defer cancel()
	verdict, err := u.Missions.EvaluateProgress(cctx, ports.ProgressRequest{
		SimulationID: w.SimulationID,
		Tick:         tickNo,
		Mission:      m,
		Actions:      actions,
	})
	if err != nil {
		u.recordOracle(w.SimulationID, "evaluator", false)
		u.log().Warn("progress evaluator failed", "simulation_id", w.SimulationID, "mission_id", m.ID, "error", err)
		return mind.MissionProgress{}, false
	}
	u.recordOracle(w.SimulationID, "evaluator", true)
	return verdict, true
}

// narrate renders the finished report to prose. Optional by contract.
func (u UseCase) narrate(ctx context.Context, simulationID string, report mind.TickReport) string {
	if u.Narrator == nil {
		return ""
	}
	cctx, cancel := u.oracleCtx(ctx)
	defer cancel()
	text, err := u.Narrator.Narrate(cctx, report)
	if err != nil {
		u.recordOracle(simulationID, "narrator", false)
		u.log().Warn("narrator failed", "simulation_id", simulationID, "tick", report.Tick, "error", err)
		return ""
	}
	u.recordOracle(simulationID, "narrator", true)
	return text
}
