package tick

import (
	"mindverse/internal/domain/mind"
)

type Request struct {
	SimulationID string
}

type Response struct {
	Report mind.TickReport `json:"report"`
}
