package mind

// Observation is everything a decision oracle is allowed to see for one agent
// and one tick. Inbox content comes exclusively from the frozen action
// generation plus the grants settled from last tick's petitions; nothing
// produced during the tick being decided can appear here.
type Observation struct {
	AgentID    string             `json:"agent_id"`
	Tick       int64              `json:"tick"`
	Self       SelfView           `json:"self"`
	Bond       *ObservedBond      `json:"bond,omitempty"`
	Mission    *ObservedMission   `json:"mission,omitempty"`
	Runway     RunwayView         `json:"runway"`
	Directory  []DirectoryEntry   `json:"directory"`
	Inbox      Inbox              `json:"inbox"`
	Benefactor ObservedBenefactor `json:"benefactor"`
	Rules      ObservedRules      `json:"rules"`
}

type SelfView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Species     string     `json:"species,omitempty"`
	Personality []string   `json:"personality,omitempty"`
	Backstory   string     `json:"backstory,omitempty"`
	Sparks      int        `json:"sparks"`
	Age         int        `json:"age"`
	BondStatus  BondStatus `json:"bond_status"`
	MateIDs     []string   `json:"mate_ids,omitempty"`
}

type ObservedBond struct {
	ID                      string   `json:"id"`
	MemberIDs               []string `json:"member_ids"`
	LeaderID                string   `json:"leader_id"`
	SparksGeneratedLastTick int      `json:"sparks_generated_last_tick"`
	CreatedTick             int64    `json:"created_tick"`
}

type ObservedMission struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Goal        string            `json:"goal"`
	Progress    string            `json:"progress,omitempty"`
	Tasks       map[string]string `json:"tasks,omitempty"`
}

type DirectoryEntry struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Species    string     `json:"species,omitempty"`
	Sparks     int        `json:"sparks"`
	Age        int        `json:"age"`
	BondStatus BondStatus `json:"bond_status"`
}

type Inbox struct {
	BondRequests  []InboxItem    `json:"bond_requests,omitempty"`
	Messages      []InboxItem    `json:"messages,omitempty"`
	GrantOutcomes []GrantOutcome `json:"grant_outcomes,omitempty"`
}

type InboxItem struct {
	FromID   string `json:"from_id"`
	FromName string `json:"from_name,omitempty"`
	Content  string `json:"content,omitempty"`
	Tick     int64  `json:"tick"`
}

// RunwayView projects how long the agent survives at its current net spark
// rate. TicksRemaining is meaningless when Sustainable.
type RunwayView struct {
	NetPerTick     int      `json:"net_per_tick"`
	TicksRemaining int      `json:"ticks_remaining"`
	Sustainable    bool     `json:"sustainable"`
	Causes         []string `json:"causes,omitempty"`
}

type ObservedBenefactor struct {
	Name     string `json:"name"`
	Balance  int    `json:"balance"`
	GrantCap int    `json:"grant_cap"`
}

type ObservedRules struct {
	UpkeepPerTick int `json:"upkeep_per_tick"`
	SpawnCost     int `json:"spawn_cost"`
	RaidStealMax  int `json:"raid_steal_max"`
	GrantCap      int `json:"grant_cap"`
}
