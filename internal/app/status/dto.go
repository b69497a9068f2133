package status

import "time"

type Request struct {
	SimulationID string
}

type Response struct {
	SimulationID      string        `json:"simulation_id"`
	Name              string        `json:"name"`
	Tick              int64         `json:"tick"`
	AliveCount        int           `json:"alive_count"`
	VanishedCount     int           `json:"vanished_count"`
	ActiveBonds       int           `json:"active_bonds"`
	ActiveMissions    int           `json:"active_missions"`
	TotalSparks       int           `json:"total_sparks"`
	BenefactorName    string        `json:"benefactor_name"`
	BenefactorBalance int           `json:"benefactor_balance"`
	Agents            []AgentStatus `json:"agents"`
	Bonds             []BondStatus  `json:"bonds"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type AgentStatus struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Species    string `json:"species,omitempty"`
	Sparks     int    `json:"sparks"`
	Age        int    `json:"age"`
	Status     string `json:"status"`
	BondStatus string `json:"bond_status"`
	BondID     string `json:"bond_id,omitempty"`
}

type BondStatus struct {
	ID           string   `json:"id"`
	MemberIDs    []string `json:"member_ids"`
	LeaderID     string   `json:"leader_id"`
	MissionID    string   `json:"mission_id,omitempty"`
	MissionTitle string   `json:"mission_title,omitempty"`
	CreatedTick  int64    `json:"created_tick"`
}
