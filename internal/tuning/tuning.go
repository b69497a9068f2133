// Package tuning holds the numeric knobs of the simulation economy. Values
// load from an optional YAML file and are frozen into each world's rules at
// genesis, so editing the file never changes a running simulation.
package tuning

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mindverse/internal/domain/mind"
)

type Economy struct {
	GenesisSparks int `yaml:"genesis_sparks"`
	UpkeepPerTick int `yaml:"upkeep_per_tick"`
	SpawnCost     int `yaml:"spawn_cost"`
	RaidStealMax  int `yaml:"raid_steal_max"`
	RaidStake     int `yaml:"raid_stake"`
	MaxAgents     int `yaml:"max_agents"`
}

type Benefactor struct {
	Name           string `yaml:"name"`
	InitialBalance int    `yaml:"initial_balance"`
	RegenPerTick   int    `yaml:"regen_per_tick"`
	GrantCap       int    `yaml:"grant_cap"`
}

type Oracle struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type Snapshot struct {
	// EveryTicks writes a point-in-time snapshot each N completed ticks.
	// Zero disables snapshotting.
	EveryTicks int `yaml:"every_ticks"`
}

type Config struct {
	Economy    Economy    `yaml:"economy"`
	Benefactor Benefactor `yaml:"benefactor"`
	Oracle     Oracle     `yaml:"oracle"`
	Snapshot   Snapshot   `yaml:"snapshot"`
}

func Default() Config {
	rules := mind.DefaultRules()
	ben := mind.DefaultBenefactor()
	return Config{
		Economy: Economy{
			GenesisSparks: rules.GenesisSparks,
			UpkeepPerTick: rules.UpkeepPerTick,
			SpawnCost:     rules.SpawnCost,
			RaidStealMax:  rules.RaidStealMax,
			RaidStake:     rules.RaidStake,
			MaxAgents:     rules.MaxAgents,
		},
		Benefactor: Benefactor{
			Name:           ben.Name,
			InitialBalance: ben.Balance,
			RegenPerTick:   ben.RegenPerTick,
			GrantCap:       ben.GrantCap,
		},
		Oracle:   Oracle{TimeoutSeconds: 30},
		Snapshot: Snapshot{EveryTicks: 10},
	}
}

// LoadFromFile reads a YAML config over the defaults. A missing path returns
// the defaults unchanged.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse tuning file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Economy.GenesisSparks < 1 {
		return fmt.Errorf("economy.genesis_sparks must be positive, got %d", c.Economy.GenesisSparks)
	}
	if c.Economy.UpkeepPerTick < 1 {
		return fmt.Errorf("economy.upkeep_per_tick must be positive, got %d", c.Economy.UpkeepPerTick)
	}
	if c.Economy.SpawnCost < 0 {
		return fmt.Errorf("economy.spawn_cost must not be negative, got %d", c.Economy.SpawnCost)
	}
	if c.Economy.RaidStealMax < 1 {
		return fmt.Errorf("economy.raid_steal_max must be positive, got %d", c.Economy.RaidStealMax)
	}
	if c.Economy.RaidStake < 1 {
		return fmt.Errorf("economy.raid_stake must be positive, got %d", c.Economy.RaidStake)
	}
	if c.Economy.MaxAgents < 2 {
		return fmt.Errorf("economy.max_agents must allow at least 2, got %d", c.Economy.MaxAgents)
	}
	if c.Benefactor.InitialBalance < 0 || c.Benefactor.RegenPerTick < 0 {
		return fmt.Errorf("benefactor pool must not start negative")
	}
	if c.Benefactor.GrantCap < 1 {
		return fmt.Errorf("benefactor.grant_cap must be positive, got %d", c.Benefactor.GrantCap)
	}
	if c.Oracle.TimeoutSeconds < 1 {
		return fmt.Errorf("oracle.timeout_seconds must be positive, got %d", c.Oracle.TimeoutSeconds)
	}
	if c.Snapshot.EveryTicks < 0 {
		return fmt.Errorf("snapshot.every_ticks must not be negative, got %d", c.Snapshot.EveryTicks)
	}
	return nil
}

// Rules maps the economy section onto the domain rules persisted at genesis.
func (c Config) Rules() mind.Rules {
	return mind.Rules{
		GenesisSparks: c.Economy.GenesisSparks,
		UpkeepPerTick: c.Economy.UpkeepPerTick,
		SpawnCost:     c.Economy.SpawnCost,
		RaidStealMax:  c.Economy.RaidStealMax,
		RaidStake:     c.Economy.RaidStake,
		MaxAgents:     c.Economy.MaxAgents,
	}
}

func (c Config) BenefactorState() mind.Benefactor {
	return mind.Benefactor{
		Name:         c.Benefactor.Name,
		Balance:      c.Benefactor.InitialBalance,
		RegenPerTick: c.Benefactor.RegenPerTick,
		GrantCap:     c.Benefactor.GrantCap,
	}
}

func (c Config) OracleTimeout() time.Duration {
	return time.Duration(c.Oracle.TimeoutSeconds) * time.Second
}
