package genesis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindverse/internal/app/auth"
	"mindverse/internal/app/ports"
	"mindverse/internal/domain/mind"
	"mindverse/internal/logging"
)

var ErrInvalidRequest = errors.New("invalid genesis request")

const defaultSimulationName = "mindverse"

type Request struct {
	NumAgents int    `json:"num_agents"`
	Name      string `json:"name"`
	// Seed pins the world RNG for reproducible runs; zero derives one from the
	// clock.
	Seed int64 `json:"seed,omitempty"`
}

type Response struct {
	SimulationID string   `json:"simulation_id"`
	OperatorKey  string   `json:"operator_key"`
	Name         string   `json:"name"`
	NumAgents    int      `json:"num_agents"`
	AgentIDs     []string `json:"agent_ids"`
	Tick         int64    `json:"tick"`
	CreatedAt    string   `json:"created_at"`
}

// UseCase creates a brand-new simulation: the founding population, the
// benefactor, the operator credential, and the genesis ledger rows, all in one
// transaction.
type UseCase struct {
	Worlds      ports.WorldRepository
	Credentials ports.OperatorCredentialRepository
	Ledger      ports.LedgerRepository
	TxManager   ports.TxManager
	Characters  ports.CharacterGenerator

	Rules         mind.Rules
	Benefactor    mind.Benefactor
	OracleTimeout time.Duration
	Logger        logging.Logger
	Now           func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	rules := u.Rules
	if rules == (mind.Rules{}) {
		rules = mind.DefaultRules()
	}
	benefactor := u.Benefactor
	if benefactor == (mind.Benefactor{}) {
		benefactor = mind.DefaultBenefactor()
	}
	if req.NumAgents < 2 || req.NumAgents > rules.MaxAgents {
		return Response{}, fmt.Errorf("%w: num_agents %d outside [2, %d]", ErrInvalidRequest, req.NumAgents, rules.MaxAgents)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultSimulationName
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()
	seed := req.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}

	simulationID := uuid.NewString()
	world := mind.NewWorld(simulationID, name, seed, rules, benefactor, now)

	entries := make([]mind.LedgerEntry, 0, req.NumAgents)
	agentIDs := make([]string, 0, req.NumAgents)
	for i := 0; i < req.NumAgents; i++ {
		profile := u.generateProfile(ctx, i+1)
		a := world.SpawnAgent(profile, rules.GenesisSparks, 0)
		agentIDs = append(agentIDs, a.ID)
		entries = append(entries, mind.LedgerEntry{
			Destination: a.ID,
			Amount:      rules.GenesisSparks,
			Reason:      mind.ReasonGenesis,
			Tick:        0,
		})
	}

	cred, err := auth.NewCredential()
	if err != nil {
		return Response{}, err
	}

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Credentials.Create(txCtx, ports.OperatorCredentialRecord{
			SimulationID: simulationID,
			KeySalt:      cred.KeySalt,
			KeyHash:      cred.KeyHash,
			Status:       auth.CredentialStatusActive,
			CreatedAt:    now,
		}); err != nil {
			return err
		}
		if err := u.Worlds.Create(txCtx, world); err != nil {
			return err
		}
		if u.Ledger != nil {
			return u.Ledger.Append(txCtx, simulationID, entries)
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	return Response{
		SimulationID: simulationID,
		OperatorKey:  cred.Key,
		Name:         name,
		NumAgents:    req.NumAgents,
		AgentIDs:     agentIDs,
		Tick:         0,
		CreatedAt:    now.UTC().Format(time.RFC3339),
	}, nil
}

// generateProfile asks the character oracle for a persona and falls back to a
// numbered placeholder when the oracle is absent, slow or broken. Genesis must
// never fail over flavor text.
func (u UseCase) generateProfile(ctx context.Context, n int) mind.CharacterProfile {
	fallback := mind.CharacterProfile{Name: fmt.Sprintf("Mind %03d", n), Species: "wisp"}
	if u.Characters == nil {
		return fallback
	}
	if u.OracleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.OracleTimeout)
		defer cancel()
	}
	profile, err := u.Characters.Generate(ctx)
	if err != nil || strings.TrimSpace(profile.Name) == "" {
		logging.OrNoOp(u.Logger).Warn("character generation failed, using fallback", "index", n, "error", err)
		return fallback
	}
	return profile
}
