package scripted

import (
	"context"
	"fmt"
	"strings"

	"mindverse/internal/domain/mind"
)

// Narrate assembles a short chronicle from the report counts. Plain
// sentences, no generator involved: the same report narrates the same way.
func (o *Oracle) Narrate(_ context.Context, report mind.TickReport) (string, error) {
	parts := []string{fmt.Sprintf("Tick %d in %s.", report.Tick, report.Name)}

	if n := len(report.Vanished); n > 0 {
		parts = append(parts, fmt.Sprintf("The dark took %s.", countNoun(n, "mind", "minds")))
	}
	if n := len(report.BondsFormed); n > 0 {
		parts = append(parts, fmt.Sprintf("%s formed.", countNoun(n, "new pact", "new pacts")))
	}
	if n := len(report.BondsDissolved); n > 0 {
		parts = append(parts, fmt.Sprintf("%s came apart.", countNoun(n, "pact", "pacts")))
	}
	if n := len(report.MissionsCompleted); n > 0 {
		parts = append(parts, fmt.Sprintf("%s sealed.", countNoun(n, "mission", "missions")))
	}
	won, lost := 0, 0
	for _, r := range report.Raids {
		switch r.Outcome {
		case mind.RaidWon:
			won++
		case mind.RaidLost:
			lost++
		}
	}
	if won+lost > 0 {
		parts = append(parts, fmt.Sprintf("Raiders struck %d times and won %d.", won+lost, won))
	}
	if n := len(report.Spawns); n > 0 {
		parts = append(parts, fmt.Sprintf("%s lit.", countNoun(n, "new flame", "new flames")))
	}
	if n := len(report.Grants); n > 0 {
		parts = append(parts, fmt.Sprintf("The benefactor heard %s.", countNoun(n, "petition", "petitions")))
	}

	parts = append(parts, fmt.Sprintf("%d minds remain, holding %d sparks between them.",
		report.AliveCount, report.TotalSparks))
	return strings.Join(parts, " "), nil
}

func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
