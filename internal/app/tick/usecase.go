package tick

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
	"mindverse/internal/logging"
)

var (
	ErrInvalidRequest = errors.New("invalid tick request")
	// ErrCorruptState marks an invariant violation inside the world aggregate.
	// It means the engine misordered a stage; the tick is aborted, nothing is
	// persisted, and no retry will help.
	ErrCorruptState = errors.New("corrupt world state")
)

// UseCase runs one complete tick: the fixed six-stage sequence over the world
// aggregate, then one transactional save. Concurrent calls for the same
// simulation are serialized by the optimistic version check; the loser gets
// ErrConflict and nothing else happens.
type UseCase struct {
	Worlds     ports.WorldRepository
	LedgerRepo ports.LedgerRepository
	Reports    ports.ReportArchive
	Snapshots  ports.SnapshotStore
	TxManager  ports.TxManager

	Decisions  ports.DecisionOracle
	Benefactor ports.BenefactorOracle
	Characters ports.CharacterGenerator
	Missions   ports.MissionOracle
	Narrator   ports.Narrator

	Stream  ports.ReportBroadcaster
	Metrics ports.SimMetrics

	Economy   mind.LedgerService
	Bonding   mind.BondingService
	Raiding   mind.RaidService
	Lifecycle mind.MissionService

	OracleTimeout      time.Duration
	SnapshotEveryTicks int64
	Logger             logging.Logger
	Now                func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SimulationID = strings.TrimSpace(req.SimulationID)
	if req.SimulationID == "" {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	w, err := u.Worlds.GetBySimulationID(ctx, req.SimulationID)
	if err != nil {
		return Response{}, err
	}
	if err := w.Validate(); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	expectedVersion := w.Version
	tickNo := w.Tick + 1
	r := &tickRun{
		w:    w,
		tick: tickNo,
		rng:  mind.TickRand(w.Seed, tickNo),
		report: mind.TickReport{
			SimulationID: w.SimulationID,
			Name:         w.Name,
			Tick:         tickNo,
		},
	}

	u.applyEconomy(ctx, r)
	u.collectDecisions(ctx, r)
	u.resolveActions(ctx, r)
	u.missionPass(ctx, r)
	u.finalize(r, nowFn())

	if err := w.Validate(); err != nil {
		return Response{}, fmt.Errorf("%w after tick %d: %v", ErrCorruptState, tickNo, err)
	}

	r.report.Narrative = u.narrate(ctx, w.SimulationID, r.report)
	r.report.GeneratedAt = nowFn().UTC()

	w.Version = expectedVersion + 1
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Worlds.SaveWithVersion(txCtx, w, expectedVersion); err != nil {
			return err
		}
		if u.LedgerRepo != nil {
			return u.LedgerRepo.Append(txCtx, w.SimulationID, r.ledger)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ports.ErrConflict) && u.Metrics != nil {
			u.Metrics.RecordConflict(w.SimulationID)
		}
		return Response{}, err
	}

	u.afterCommit(ctx, r)
	return Response{Report: r.report}, nil
}

// afterCommit runs the side channels a finished tick feeds: metrics, the
// report archive, live watchers and the periodic snapshot. All best-effort;
// the tick already committed and a failure here must not unwind it.
func (u UseCase) afterCommit(ctx context.Context, r *tickRun) {
	simulationID := r.w.SimulationID
	if u.Metrics != nil {
		u.Metrics.RecordTick(simulationID)
		for _, rec := range r.report.Actions {
			u.Metrics.RecordAction(simulationID, rec.Intent, rec.Result)
		}
		granted := 0
		for _, g := range r.report.Grants {
			granted += g.Granted
		}
		u.Metrics.RecordEconomy(simulationID, r.report.MintedTotal, granted, len(r.report.Vanished))
	}
	if u.Reports != nil {
		if err := u.Reports.Append(ctx, r.report); err != nil {
			u.log().Error("report archive append failed", "simulation_id", simulationID, "tick", r.tick, "error", err)
		}
	}
	if u.Stream != nil {
		u.Stream.Broadcast(r.report)
	}
	if u.Snapshots != nil && u.SnapshotEveryTicks > 0 && r.tick%u.SnapshotEveryTicks == 0 {
		if err := u.Snapshots.Write(ctx, r.w); err != nil {
			u.log().Error("snapshot write failed", "simulation_id", simulationID, "tick", r.tick, "error", err)
		}
	}
}

func (u UseCase) log() logging.Logger {
	return logging.OrNoOp(u.Logger)
}
