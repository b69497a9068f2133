package scripted

import (
	"context"
	"fmt"
	"strings"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

var missionThemes = []string{
	"Chart the cold edge of the directory and report back.",
	"Outlast the next raid season without losing a single member.",
	"Stockpile enough sparks to laugh at the upkeep collector.",
	"Answer every message sent to the pact before it goes stale.",
	"Prove the benefactor wrong about unbonded minds.",
}

// GenerateMission produces templated content for a fresh bond. The theme is
// drawn per (seed, tick, bond), so identical runs get identical missions.
func (o *Oracle) GenerateMission(_ context.Context, req ports.MissionRequest) (mind.MissionContent, error) {
	names := make([]string, 0, len(req.Members))
	for _, m := range req.Members {
		names = append(names, m.Name)
	}

	rng := o.tickRand(req.Tick, "mission:"+memberKey(req.Members))
	tasks := make(map[string]string, len(req.Members))
	for _, m := range req.Members {
		tasks[m.ID] = fmt.Sprintf("%s keeps the flame: stay bonded and answer your mates.", m.Name)
	}

	return mind.MissionContent{
		Title:       "The Pact of " + joinNames(names),
		Description: missionThemes[rng.IntN(len(missionThemes))] + " A pact holds only while every member still burns.",
		Goal:        fmt.Sprintf("hold the bond for %d ticks", o.opts.MissionTicks),
		Tasks:       tasks,
	}, nil
}

// EvaluateProgress completes a mission once it has run MissionTicks ticks
// since creation. Deriving the round from the mission itself keeps the
// evaluator stateless, so a restored simulation resumes the count correctly.
func (o *Oracle) EvaluateProgress(_ context.Context, req ports.ProgressRequest) (mind.MissionProgress, error) {
	elapsed := req.Tick - req.Mission.CreatedTick
	total := o.opts.MissionTicks
	done := elapsed >= total

	state := fmt.Sprintf("underway, round %d of %d", elapsed, total)
	if done {
		state = "done"
	}
	tasks := make(map[string]string, len(req.Mission.Tasks))
	for id := range req.Mission.Tasks {
		tasks[id] = state
	}

	summary := fmt.Sprintf("Round %d of %d, %d member actions logged. The pact holds.", elapsed, total, len(req.Actions))
	if done {
		summary = fmt.Sprintf("Held for %d ticks. The pact is sealed.", elapsed)
	}
	return mind.MissionProgress{IsComplete: done, Summary: summary, Tasks: tasks}, nil
}

func memberKey(members []mind.Agent) string {
	if len(members) == 0 {
		return ""
	}
	return members[0].ID
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "No One"
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
