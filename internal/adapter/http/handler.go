package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"mindverse/internal/app/auth"
	"mindverse/internal/app/genesis"
	"mindverse/internal/app/ledger"
	"mindverse/internal/app/observe"
	"mindverse/internal/app/ports"
	"mindverse/internal/app/replay"
	"mindverse/internal/app/restore"
	"mindverse/internal/app/status"
	"mindverse/internal/app/tick"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"strconv"
)

const operatorKeyHeader = "X-Operator-Key"

type Handler struct {
	GenesisUC   genesis.UseCase
	AuthUC      auth.VerifyUseCase
	TickUC      tick.UseCase
	StatusUC    status.UseCase
	ObserveUC   observe.UseCase
	ReplayUC    replay.UseCase
	ReplayGetUC replay.GetUseCase
	LedgerUC    ledger.UseCase
	RestoreUC   restore.UseCase
	Metrics     metricsSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.POST("/sim", h.createSimulation)
	api.POST("/sim/restore", h.restoreSimulation)
	api.GET("/sim/:sim_id", h.simulationStatus)
	api.GET("/sim/:sim_id/summary", h.simulationSummary)
	api.POST("/sim/:sim_id/tick", h.runTick)
	api.GET("/sim/:sim_id/agents/:agent_id/observation", h.observation)
	api.GET("/sim/:sim_id/reports", h.listReports)
	api.GET("/sim/:sim_id/reports/:tick", h.getReport)
	api.GET("/sim/:sim_id/ledger", h.ledgerEntries)

	s.GET("/healthz", h.health)
	s.GET("/ops/metrics", h.metrics)
}

func (h Handler) createSimulation(c context.Context, ctx *app.RequestContext) {
	var body genesis.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.GenesisUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) restoreSimulation(c context.Context, ctx *app.RequestContext) {
	var body restore.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.RestoreUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) runTick(c context.Context, ctx *app.RequestContext) {
	simulationID, err := h.requireOperator(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.TickUC.Execute(c, tick.Request{SimulationID: simulationID})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) simulationStatus(c context.Context, ctx *app.RequestContext) {
	simulationID, err := h.requireOperator(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.StatusUC.Execute(c, status.Request{SimulationID: simulationID})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) observation(c context.Context, ctx *app.RequestContext) {
	simulationID, err := h.requireOperator(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.ObserveUC.Execute(c, observe.Request{
		SimulationID: simulationID,
		AgentID:      ctx.Param("agent_id"),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listReports(c context.Context, ctx *app.RequestContext) {
	simulationID, err := h.requireOperator(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	fromTick, _ := strconv.ParseInt(string(ctx.Query("from_tick")), 10, 64)
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SimulationID: simulationID,
		FromTick:     fromTick,
		Limit:        limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getReport(c context.Context, ctx *app.RequestContext) {
	simulationID, err := h.requireOperator(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	tickNo, err := strconv.ParseInt(ctx.Param("tick"), 10, 64)
	if err != nil || tickNo <= 0 {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_tick", "invalid tick")
		return
	}

	resp, err := h.ReplayGetUC.Execute(c, replay.GetRequest{
		SimulationID: simulationID,
		Tick:         tickNo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) ledgerEntries(c context.Context, ctx *app.RequestContext) {
	simulationID, err := h.requireOperator(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	resp, err := h.LedgerUC.Execute(c, ledger.Request{
		SimulationID: simulationID,
		Limit:        limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) health(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

type metricsSnapshotProvider interface {
	SnapshotAny(simulationID string) any
}

func (h Handler) simulationSummary(c context.Context, ctx *app.RequestContext) {
	simulationID, err := h.requireOperator(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if h.Metrics == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "metrics recorder not configured")
		return
	}

	ctx.JSON(consts.StatusOK, h.Metrics.SnapshotAny(simulationID))
}

func (h Handler) metrics(_ context.Context, ctx *app.RequestContext) {
	if h.Metrics == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "metrics recorder not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.Metrics.SnapshotAny(string(ctx.Query("simulation_id"))))
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingOperatorKey = errors.New("missing x-operator-key header")

// requireOperator resolves the simulation from the path and checks the
// operator key header against that simulation's stored credential.
func (h Handler) requireOperator(c context.Context, ctx *app.RequestContext) (string, error) {
	simulationID := strings.TrimSpace(ctx.Param("sim_id"))
	operatorKey := strings.TrimSpace(string(ctx.GetHeader(operatorKeyHeader)))
	if operatorKey == "" {
		return "", ErrMissingOperatorKey
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		SimulationID: simulationID,
		OperatorKey:  operatorKey,
	}); err != nil {
		return "", err
	}
	return simulationID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingOperatorKey):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_operator_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_operator_key", err.Error())
	case errors.Is(err, restore.ErrNoSnapshot):
		writeErrorBody(ctx, consts.StatusNotFound, "no_snapshot", err.Error())
	case errors.Is(err, observe.ErrAgentVanished):
		writeErrorBody(ctx, consts.StatusGone, "agent_vanished", err.Error())
	case errors.Is(err, tick.ErrCorruptState):
		writeErrorBody(ctx, consts.StatusInternalServerError, "corrupt_state", err.Error())
	case errors.Is(err, genesis.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, tick.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, ledger.ErrInvalidRequest),
		errors.Is(err, restore.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
