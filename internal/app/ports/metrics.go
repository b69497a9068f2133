package ports

import "mindverse/internal/domain/mind"

type SimMetrics interface {
	RecordTick(simulationID string)
	RecordAction(simulationID string, intent mind.Intent, result mind.ActionResultCode)
	RecordOracle(simulationID, oracle string, ok bool)
	RecordConflict(simulationID string)
	RecordEconomy(simulationID string, minted, granted, vanished int)
}
