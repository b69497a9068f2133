package runway

import "mindverse/internal/domain/mind"

const criticalSparksThreshold = 3

type Estimate struct {
	NetPerTick     int
	TicksRemaining int
	Sustainable    bool
	Causes         []string
}

// ForAgent projects how long an agent lasts at its current net spark rate.
// Expected bond income is exactly one spark per member per tick (a bond mints
// |members| units spread uniformly over |members| heads), so a bonded agent
// breaks even against a unit upkeep while an unbonded one drains.
func ForAgent(a mind.Agent, bondSize int, rules mind.Rules) Estimate {
	income := 0
	if bondSize >= 2 {
		income = 1
	}
	net := income - rules.UpkeepPerTick

	causes := make([]string, 0, 2)
	if bondSize < 2 {
		causes = append(causes, "UNBONDED_DRAIN")
	}
	if a.Sparks <= criticalSparksThreshold {
		causes = append(causes, "CRITICAL")
	}

	est := Estimate{NetPerTick: net, Causes: causes}
	if net >= 0 {
		est.Sustainable = true
		return est
	}
	est.TicksRemaining = ticksUntilZero(a.Sparks, -net)
	return est
}

func ticksUntilZero(sparks, drain int) int {
	if sparks <= 0 {
		return 0
	}
	return (sparks + drain - 1) / drain
}
