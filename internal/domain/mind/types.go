package mind

type AgentStatus string

const (
	StatusAlive    AgentStatus = "alive"
	StatusVanished AgentStatus = "vanished"
)

type BondStatus string

const (
	BondStatusUnbonded BondStatus = "unbonded"
	BondStatusBonded   BondStatus = "bonded"
	BondStatusLeader   BondStatus = "leader"
)

type Agent struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Species      string      `json:"species"`
	Personality  []string    `json:"personality,omitempty"`
	Backstory    string      `json:"backstory,omitempty"`
	Sparks       int         `json:"sparks"`
	Age          int         `json:"age"`
	Status       AgentStatus `json:"status"`
	BondStatus   BondStatus  `json:"bond_status"`
	BondID       string      `json:"bond_id,omitempty"`
	MateIDs      []string    `json:"mate_ids,omitempty"`
	BornTick     int64       `json:"born_tick"`
	VanishedTick int64       `json:"vanished_tick,omitempty"`
}

func (a *Agent) Alive() bool { return a.Status == StatusAlive }

// Strength is the raid weight: survivors get credit for both longevity and
// hoarded sparks.
func (a *Agent) Strength() int { return a.Age + a.Sparks }

type Bond struct {
	ID                      string   `json:"id"`
	MemberIDs               []string `json:"member_ids"`
	LeaderID                string   `json:"leader_id"`
	MissionID               string   `json:"mission_id,omitempty"`
	SparksGeneratedThisTick int      `json:"sparks_generated_this_tick"`
	CreatedTick             int64    `json:"created_tick"`
}

func (b *Bond) HasMember(agentID string) bool {
	for _, id := range b.MemberIDs {
		if id == agentID {
			return true
		}
	}
	return false
}

type Mission struct {
	ID            string            `json:"id"`
	BondID        string            `json:"bond_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Goal          string            `json:"goal"`
	LeaderID      string            `json:"leader_id"`
	Progress      string            `json:"progress,omitempty"`
	Tasks         map[string]string `json:"tasks,omitempty"`
	IsComplete    bool              `json:"is_complete"`
	CreatedTick   int64             `json:"created_tick"`
	CompletedTick int64             `json:"completed_tick,omitempty"`
}

type Intent string

const (
	IntentBondRequest  Intent = "bond-request"
	IntentBondAccept   Intent = "bond-accept"
	IntentRaid         Intent = "raid"
	IntentSpawn        Intent = "spawn"
	IntentRequestGrant Intent = "request-grant"
	IntentMessage      Intent = "message"
	// IntentIdle is what an oracle failure or explicit no-op degrades to. It is
	// never queued into the action buffers.
	IntentIdle Intent = "idle"
)

func ValidIntent(i Intent) bool {
	switch i {
	case IntentBondRequest, IntentBondAccept, IntentRaid, IntentSpawn, IntentRequestGrant, IntentMessage, IntentIdle:
		return true
	}
	return false
}

// ActionIntent is the tagged variant an oracle returns. Content and Reasoning
// are opaque payload; the engine only ever inspects Intent and TargetID.
type ActionIntent struct {
	Intent    Intent `json:"intent"`
	TargetID  string `json:"target_id,omitempty"`
	Content   string `json:"content,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// PendingAction is an ActionIntent stamped with its sender and the tick it was
// queued in. Actions queued during tick T stay invisible until the observation
// built for tick T+1.
type PendingAction struct {
	AgentID   string `json:"agent_id"`
	Intent    Intent `json:"intent"`
	TargetID  string `json:"target_id,omitempty"`
	Content   string `json:"content,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
	Tick      int64  `json:"tick"`
}

type Benefactor struct {
	Name         string `json:"name"`
	Balance      int    `json:"balance"`
	RegenPerTick int    `json:"regen_per_tick"`
	GrantCap     int    `json:"grant_cap"`
}

type GrantPetition struct {
	AgentID string `json:"agent_id"`
	Content string `json:"content,omitempty"`
	Tick    int64  `json:"tick"`
}

// GrantDecision is what the benefactor oracle returns. Amounts are advisory:
// the ledger clamps them to [0, cap] and to the remaining balance.
type GrantDecision struct {
	AgentID   string `json:"agent_id"`
	Amount    int    `json:"amount"`
	Reasoning string `json:"reasoning,omitempty"`
}

type GrantOutcome struct {
	AgentID   string `json:"agent_id"`
	Requested bool   `json:"requested"`
	Granted   int    `json:"granted"`
	Reasoning string `json:"reasoning,omitempty"`
	Tick      int64  `json:"tick"`
}

type CharacterProfile struct {
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Personality []string `json:"personality,omitempty"`
	Backstory   string   `json:"backstory,omitempty"`
}

type MissionContent struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Goal        string            `json:"goal"`
	Tasks       map[string]string `json:"tasks,omitempty"`
}

type MissionProgress struct {
	IsComplete bool              `json:"is_complete"`
	Summary    string            `json:"summary"`
	Tasks      map[string]string `json:"tasks,omitempty"`
}

type LedgerReason string

const (
	ReasonUpkeep    LedgerReason = "upkeep"
	ReasonMint      LedgerReason = "mint"
	ReasonGrant     LedgerReason = "grant"
	ReasonRegen     LedgerReason = "regen"
	ReasonRaidSteal LedgerReason = "raid-steal"
	ReasonRaidStake LedgerReason = "raid-stake"
	ReasonSpawnCost LedgerReason = "spawn-cost"
	ReasonGenesis   LedgerReason = "genesis"
)

// LedgerEntry records one spark movement. Empty Source means the unit was
// created (mint, grant, regen, genesis); empty Destination means it was
// destroyed (upkeep, spawn cost).
type LedgerEntry struct {
	Source      string       `json:"source,omitempty"`
	Destination string       `json:"destination,omitempty"`
	Amount      int          `json:"amount"`
	Reason      LedgerReason `json:"reason"`
	Tick        int64        `json:"tick"`
}

// Rules are the economy constants in force for one simulation. They are
// copied from tuning at genesis and persisted with the world so a running
// simulation is immune to tuning edits.
type Rules struct {
	GenesisSparks int `json:"genesis_sparks"`
	UpkeepPerTick int `json:"upkeep_per_tick"`
	SpawnCost     int `json:"spawn_cost"`
	RaidStealMax  int `json:"raid_steal_max"`
	RaidStake     int `json:"raid_stake"`
	MaxAgents     int `json:"max_agents"`
}

func DefaultRules() Rules {
	return Rules{
		GenesisSparks: 10,
		UpkeepPerTick: 1,
		SpawnCost:     5,
		RaidStealMax:  5,
		RaidStake:     1,
		MaxAgents:     200,
	}
}

func DefaultBenefactor() Benefactor {
	return Benefactor{
		Name:         "Bob",
		Balance:      100,
		RegenPerTick: 2,
		GrantCap:     5,
	}
}
