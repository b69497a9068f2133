package mind

import "time"

type VanishCause string

const (
	VanishCauseUpkeep VanishCause = "upkeep"
	VanishCauseRaid   VanishCause = "raid"
	VanishCauseSpawn  VanishCause = "spawn"
)

type VanishRecord struct {
	AgentID string      `json:"agent_id"`
	Cause   VanishCause `json:"cause"`
	Age     int         `json:"age"`
	Tick    int64       `json:"tick"`
}

type BondRecord struct {
	BondID    string   `json:"bond_id"`
	MemberIDs []string `json:"member_ids"`
	LeaderID  string   `json:"leader_id"`
	MissionID string   `json:"mission_id,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

type MissionRecord struct {
	MissionID string `json:"mission_id"`
	BondID    string `json:"bond_id"`
	Title     string `json:"title"`
	Goal      string `json:"goal,omitempty"`
	Progress  string `json:"progress,omitempty"`
}

type RaidOutcome string

const (
	RaidWon     RaidOutcome = "won"
	RaidLost    RaidOutcome = "lost"
	RaidRefused RaidOutcome = "refused-insufficient-stake"
)

// RaidRecord is required output, not telemetry: downstream narration depends
// on both strengths, the probability used and the signed transfer.
type RaidRecord struct {
	AttackerID         string      `json:"attacker_id"`
	DefenderID         string      `json:"defender_id"`
	AttackerStrength   int         `json:"attacker_strength"`
	DefenderStrength   int         `json:"defender_strength"`
	SuccessProbability float64     `json:"success_probability"`
	Outcome            RaidOutcome `json:"outcome"`
	// Transfer is signed from the attacker's point of view: positive sparks
	// won, negative the stake lost.
	Transfer int   `json:"transfer"`
	Tick     int64 `json:"tick"`
}

type SpawnRecord struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
	Name     string `json:"name"`
	Species  string `json:"species,omitempty"`
	Cost     int    `json:"cost"`
}

type ActionResultCode string

const (
	ActionResolved ActionResultCode = "resolved"
	ActionQueued   ActionResultCode = "queued"
	ActionDropped  ActionResultCode = "dropped"
	ActionRefused  ActionResultCode = "refused"
	ActionIdled    ActionResultCode = "idle"
)

// ActionRecord tracks what each collected action became. Dropped and refused
// actions carry the reason; they are report content, never errors.
type ActionRecord struct {
	AgentID  string           `json:"agent_id"`
	Intent   Intent           `json:"intent"`
	TargetID string           `json:"target_id,omitempty"`
	Result   ActionResultCode `json:"result"`
	Reason   string           `json:"reason,omitempty"`
}

// TickReport is the sole channel human-facing layers learn from. One is
// produced per completed tick, archived, and broadcast.
type TickReport struct {
	SimulationID string `json:"simulation_id"`
	Name         string `json:"name"`
	Tick         int64  `json:"tick"`

	Upkeep      []LedgerEntry `json:"upkeep,omitempty"`
	Minted      []LedgerEntry `json:"minted,omitempty"`
	MintedTotal int           `json:"minted_total"`

	Grants            []GrantOutcome `json:"grants,omitempty"`
	BenefactorBalance int            `json:"benefactor_balance"`

	Actions           []ActionRecord  `json:"actions,omitempty"`
	BondsFormed       []BondRecord    `json:"bonds_formed,omitempty"`
	BondsDissolved    []BondRecord    `json:"bonds_dissolved,omitempty"`
	MissionsCreated   []MissionRecord `json:"missions_created,omitempty"`
	MissionsProgress  []MissionRecord `json:"missions_progress,omitempty"`
	MissionsCompleted []MissionRecord `json:"missions_completed,omitempty"`
	Raids             []RaidRecord    `json:"raids,omitempty"`
	Spawns            []SpawnRecord   `json:"spawns,omitempty"`
	Vanished          []VanishRecord  `json:"vanished,omitempty"`
	MessagesQueued    int             `json:"messages_queued"`

	AliveCount  int `json:"alive_count"`
	TotalSparks int `json:"total_sparks"`

	Narrative   string    `json:"narrative,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}
