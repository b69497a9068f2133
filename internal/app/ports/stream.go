package ports

import "mindverse/internal/domain/mind"

// ReportBroadcaster fans a finished tick report out to live watchers. It must
// never block the tick path; slow consumers are the adapter's problem.
type ReportBroadcaster interface {
	Broadcast(report mind.TickReport)
}
