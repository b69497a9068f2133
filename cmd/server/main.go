package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	sqlitearchive "mindverse/internal/adapter/archive/sqlite"
	httpadapter "mindverse/internal/adapter/http"
	metricsinmem "mindverse/internal/adapter/metrics/inmemory"
	"mindverse/internal/adapter/oracle/anthropic"
	"mindverse/internal/adapter/oracle/openai"
	"mindverse/internal/adapter/oracle/scripted"
	gormrepo "mindverse/internal/adapter/repo/gorm"
	memrepo "mindverse/internal/adapter/repo/memory"
	zstdsnap "mindverse/internal/adapter/snapshot/zstd"
	"mindverse/internal/adapter/stream/ws"
	"mindverse/internal/app/auth"
	"mindverse/internal/app/genesis"
	"mindverse/internal/app/ledger"
	"mindverse/internal/app/observe"
	"mindverse/internal/app/ports"
	"mindverse/internal/app/replay"
	"mindverse/internal/app/restore"
	"mindverse/internal/app/status"
	"mindverse/internal/app/tick"
	"mindverse/internal/domain/mind"
	"mindverse/internal/logging"
	"mindverse/internal/tuning"
	"mindverse/migrations"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	logger := logging.New(os.Stderr, slog.LevelInfo)

	cfg, err := tuning.LoadFromFile(strings.TrimSpace(os.Getenv("MINDVERSE_TUNING_PATH")))
	if err != nil {
		log.Fatalf("load tuning: %v", err)
	}

	worlds, credentials, ledgerRepo, txManager := mustBuildRepos(logger)
	reports := mustBuildReportArchive()
	snapshots := zstdsnap.NewStore(envOr("MINDVERSE_SNAPSHOT_DIR", "./snapshots"))
	oracles := buildOracleFromEnv(logger)
	recorder := metricsinmem.NewRecorder()

	hub := ws.NewHub(logger)
	go serveStream(hub, envOr("MINDVERSE_STREAM_ADDR", ":8081"), logger)

	h := httpadapter.Handler{
		GenesisUC: genesis.UseCase{
			Worlds:        worlds,
			Credentials:   credentials,
			Ledger:        ledgerRepo,
			TxManager:     txManager,
			Characters:    oracles,
			Rules:         cfg.Rules(),
			Benefactor:    cfg.BenefactorState(),
			OracleTimeout: cfg.OracleTimeout(),
			Logger:        logger,
		},
		AuthUC: auth.VerifyUseCase{Credentials: credentials},
		TickUC: tick.UseCase{
			Worlds:     worlds,
			LedgerRepo: ledgerRepo,
			Reports:    reports,
			Snapshots:  snapshots,
			TxManager:  txManager,
			Decisions:  oracles,
			Benefactor: oracles,
			Characters: oracles,
			Missions:   oracles,
			Narrator:   oracles,
			Stream:     hub,
			Metrics:    recorder,
			Economy:    mind.LedgerService{},
			Bonding:    mind.BondingService{},
			Raiding:    mind.RaidService{},
			Lifecycle:  mind.MissionService{},

			OracleTimeout:      cfg.OracleTimeout(),
			SnapshotEveryTicks: int64(cfg.Snapshot.EveryTicks),
			Logger:             logger,
		},
		StatusUC:    status.UseCase{Worlds: worlds},
		ObserveUC:   observe.UseCase{Worlds: worlds},
		ReplayUC:    replay.UseCase{Reports: reports},
		ReplayGetUC: replay.GetUseCase{Reports: reports},
		LedgerUC:    ledger.UseCase{Entries: ledgerRepo},
		RestoreUC: restore.UseCase{
			Worlds:      worlds,
			Credentials: credentials,
			Snapshots:   snapshots,
			TxManager:   txManager,
			Logger:      logger,
		},
		Metrics: recorder,
	}

	addr := envOr("MINDVERSE_HTTP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("mindverse server listening on %s", addr)
	s.Spin()
}

func mustBuildRepos(logger logging.Logger) (ports.WorldRepository, ports.OperatorCredentialRepository, ports.LedgerRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("MINDVERSE_DB_DSN"))
	if dsn == "" {
		logger.Warn("MINDVERSE_DB_DSN is empty, using in-memory repositories; state is lost on exit")
		store := memrepo.NewStore()
		return memrepo.NewWorldRepo(store), memrepo.NewCredentialRepo(store), memrepo.NewLedgerRepo(store), memrepo.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrationsFS(context.Background(), db, migrations.Files); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewWorldRepo(db), gormrepo.NewOperatorCredentialRepo(db), gormrepo.NewLedgerRepo(db), gormrepo.NewTxManager(db)
}

func mustBuildReportArchive() ports.ReportArchive {
	path := envOr("MINDVERSE_REPORT_DB_PATH", "./reports.db")
	archive, err := sqlitearchive.Open(path)
	if err != nil {
		log.Fatalf("open report archive %s: %v", path, err)
	}
	return archive
}

// oracleSet is everything the engine asks of its oracles. Every provider
// implements the full set, so selection is a single switch.
type oracleSet interface {
	ports.DecisionOracle
	ports.BenefactorOracle
	ports.CharacterGenerator
	ports.MissionOracle
	ports.Narrator
}

func buildOracleFromEnv(logger logging.Logger) oracleSet {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("MINDVERSE_ORACLE_PROVIDER")))
	switch provider {
	case "anthropic":
		logger.Info("using anthropic oracles")
		return anthropic.NewSet()
	case "openai":
		logger.Info("using openai oracles")
		return openai.NewSet()
	case "", "scripted":
		seed := int64(intEnv("MINDVERSE_SCRIPTED_SEED", 1))
		logger.Info("using scripted oracles", "seed", seed)
		return scripted.New(func(o *scripted.Options) { o.Seed = seed })
	default:
		log.Fatalf("unknown MINDVERSE_ORACLE_PROVIDER %q (want scripted, anthropic or openai)", provider)
		return nil
	}
}

func serveStream(hub *ws.Hub, addr string, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/stream", hub.Handler())
	logger.Info("report stream listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("report stream server: %v", err)
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
