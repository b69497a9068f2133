package inmemory

import (
	"sync"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
)

// Snapshot is one simulation's counters, copied out for serving.
type Snapshot struct {
	Ticks          uint64            `json:"ticks"`
	Conflicts      uint64            `json:"conflicts"`
	ActionTotal    uint64            `json:"action_total"`
	ByIntent       map[string]uint64 `json:"by_intent"`
	ByResult       map[string]uint64 `json:"by_result"`
	OracleCalls    map[string]uint64 `json:"oracle_calls"`
	OracleFailures map[string]uint64 `json:"oracle_failures"`
	SparksMinted   uint64            `json:"sparks_minted"`
	SparksGranted  uint64            `json:"sparks_granted"`
	Vanished       uint64            `json:"vanished"`
}

type simCounters struct {
	ticks          uint64
	conflicts      uint64
	actions        uint64
	byIntent       map[string]uint64
	byResult       map[string]uint64
	oracleCalls    map[string]uint64
	oracleFailures map[string]uint64
	minted         uint64
	granted        uint64
	vanished       uint64
}

// Recorder counts per-simulation activity in memory. Counters reset with the
// process; durable history lives in the report archive.
type Recorder struct {
	mu   sync.Mutex
	sims map[string]*simCounters
}

var _ ports.SimMetrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{sims: map[string]*simCounters{}}
}

func (r *Recorder) sim(simulationID string) *simCounters {
	c, ok := r.sims[simulationID]
	if !ok {
		c = &simCounters{
			byIntent:       map[string]uint64{},
			byResult:       map[string]uint64{},
			oracleCalls:    map[string]uint64{},
			oracleFailures: map[string]uint64{},
		}
		r.sims[simulationID] = c
	}
	return c
}

func (r *Recorder) RecordTick(simulationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sim(simulationID).ticks++
}

func (r *Recorder) RecordAction(simulationID string, intent mind.Intent, result mind.ActionResultCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.sim(simulationID)
	c.actions++
	c.byIntent[string(intent)]++
	c.byResult[string(result)]++
}

func (r *Recorder) RecordOracle(simulationID, oracle string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.sim(simulationID)
	c.oracleCalls[oracle]++
	if !ok {
		c.oracleFailures[oracle]++
	}
}

func (r *Recorder) RecordConflict(simulationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sim(simulationID).conflicts++
}

func (r *Recorder) RecordEconomy(simulationID string, minted, granted, vanished int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.sim(simulationID)
	if minted > 0 {
		c.minted += uint64(minted)
	}
	if granted > 0 {
		c.granted += uint64(granted)
	}
	if vanished > 0 {
		c.vanished += uint64(vanished)
	}
}

// SnapshotFor copies one simulation's counters. Unknown ids yield zeroes.
func (r *Recorder) SnapshotFor(simulationID string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.sims[simulationID]
	if !ok {
		return Snapshot{
			ByIntent:       map[string]uint64{},
			ByResult:       map[string]uint64{},
			OracleCalls:    map[string]uint64{},
			OracleFailures: map[string]uint64{},
		}
	}
	return snapshotOf(c)
}

// All copies every simulation's counters, keyed by simulation id.
func (r *Recorder) All() map[string]Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Snapshot, len(r.sims))
	for id, c := range r.sims {
		out[id] = snapshotOf(c)
	}
	return out
}

// SnapshotAny serves one simulation's counters, or every simulation's when
// simulationID is empty. The any return keeps consumers decoupled from this
// package's types.
func (r *Recorder) SnapshotAny(simulationID string) any {
	if simulationID == "" {
		return r.All()
	}
	return r.SnapshotFor(simulationID)
}

func snapshotOf(c *simCounters) Snapshot {
	out := Snapshot{
		Ticks:          c.ticks,
		Conflicts:      c.conflicts,
		ActionTotal:    c.actions,
		ByIntent:       make(map[string]uint64, len(c.byIntent)),
		ByResult:       make(map[string]uint64, len(c.byResult)),
		OracleCalls:    make(map[string]uint64, len(c.oracleCalls)),
		OracleFailures: make(map[string]uint64, len(c.oracleFailures)),
		SparksMinted:   c.minted,
		SparksGranted:  c.granted,
		Vanished:       c.vanished,
	}
	for k, v := range c.byIntent {
		out.ByIntent[k] = v
	}
	for k, v := range c.byResult {
		out.ByResult[k] = v
	}
	for k, v := range c.oracleCalls {
		out.OracleCalls[k] = v
	}
	for k, v := range c.oracleFailures {
		out.OracleFailures[k] = v
	}
	return out
}
