package replay

import "mindverse/internal/domain/mind"

type Request struct {
	SimulationID string
	FromTick     int64
	Limit        int
}

type Response struct {
	Reports []mind.TickReport `json:"reports"`
	Summary Summary           `json:"summary"`
}

// Summary folds a report range into running totals so callers can see how
// an era went without walking every report themselves.
type Summary struct {
	FromTick          int64 `json:"from_tick"`
	ToTick            int64 `json:"to_tick"`
	TicksCovered      int   `json:"ticks_covered"`
	SparksMinted      int   `json:"sparks_minted"`
	SparksGranted     int   `json:"sparks_granted"`
	BondsFormed       int   `json:"bonds_formed"`
	BondsDissolved    int   `json:"bonds_dissolved"`
	MissionsCompleted int   `json:"missions_completed"`
	RaidsWon          int   `json:"raids_won"`
	RaidsLost         int   `json:"raids_lost"`
	RaidsRefused      int   `json:"raids_refused"`
	Spawned           int   `json:"spawned"`
	Vanished          int   `json:"vanished"`
	MessagesQueued    int   `json:"messages_queued"`
}

type GetRequest struct {
	SimulationID string
	Tick         int64
}

type GetResponse struct {
	Report mind.TickReport `json:"report"`
}
