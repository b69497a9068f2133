package observe

import (
	"mindverse/internal/domain/mind"
)

type Request struct {
	SimulationID string
	AgentID      string
}

type Response struct {
	Observation mind.Observation `json:"observation"`
}
