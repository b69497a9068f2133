package runway

import (
	"reflect"
	"testing"

	"mindverse/internal/domain/mind"
)

func TestForAgent_UnbondedDrains(t *testing.T) {
	est := ForAgent(mind.Agent{Sparks: 5}, 0, mind.DefaultRules())
	if est.Sustainable {
		t.Fatalf("unbonded agent must not be sustainable")
	}
	if est.NetPerTick != -1 || est.TicksRemaining != 5 {
		t.Fatalf("expected -1/tick over 5 ticks, got %+v", est)
	}
	if !reflect.DeepEqual(est.Causes, []string{"UNBONDED_DRAIN"}) {
		t.Fatalf("unexpected causes: %v", est.Causes)
	}
}

func TestForAgent_BondedBreaksEven(t *testing.T) {
	est := ForAgent(mind.Agent{Sparks: 9}, 3, mind.DefaultRules())
	if !est.Sustainable || est.NetPerTick != 0 {
		t.Fatalf("bonded agent should break even, got %+v", est)
	}
	if est.TicksRemaining != 0 {
		t.Fatalf("sustainable estimate must not carry a countdown, got %+v", est)
	}
}

func TestForAgent_CriticalFlagAtLowBalance(t *testing.T) {
	est := ForAgent(mind.Agent{Sparks: 2}, 2, mind.DefaultRules())
	if !reflect.DeepEqual(est.Causes, []string{"CRITICAL"}) {
		t.Fatalf("expected critical cause only, got %v", est.Causes)
	}
}

func TestForAgent_SteeperUpkeepRoundsUp(t *testing.T) {
	rules := mind.DefaultRules()
	rules.UpkeepPerTick = 3
	est := ForAgent(mind.Agent{Sparks: 7}, 0, rules)
	// 7 sparks at -3/tick: gone on the third upkeep.
	if est.TicksRemaining != 3 {
		t.Fatalf("expected 3 ticks, got %+v", est)
	}
}
