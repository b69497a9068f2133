package httpadapter

import (
	"encoding/json"
	"testing"
	"time"

	"mindverse/internal/app/genesis"
	"mindverse/internal/app/ledger"
	"mindverse/internal/app/observe"
	"mindverse/internal/app/replay"
	"mindverse/internal/app/restore"
	"mindverse/internal/app/status"
	"mindverse/internal/app/tick"
	"mindverse/internal/domain/mind"
)

func TestResponseJSONUsesSnakeCase(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	report := mind.TickReport{
		SimulationID:      "sim-1",
		Name:              "first-light",
		Tick:              3,
		MintedTotal:       4,
		BenefactorBalance: 96,
		Grants:            []mind.GrantOutcome{{AgentID: "M000001", Requested: true, Granted: 2, Tick: 3}},
		MessagesQueued:    1,
		AliveCount:        4,
		TotalSparks:       40,
		GeneratedAt:       now,
	}
	observation := mind.Observation{
		AgentID: "M000001",
		Tick:    4,
		Self:    mind.SelfView{ID: "M000001", Name: "Aster", Sparks: 10, BondStatus: mind.BondStatusUnbonded},
		Runway:  mind.RunwayView{NetPerTick: -1, TicksRemaining: 10},
	}
	entry := mind.LedgerEntry{Destination: "M000001", Amount: 10, Reason: mind.ReasonGenesis, Tick: 0}

	cases := []struct {
		name    string
		payload any
		want    []string
		notWant []string
	}{
		{
			name: "genesis",
			payload: genesis.Response{
				SimulationID: "sim-1",
				OperatorKey:  "key",
				Name:         "first-light",
				NumAgents:    4,
				AgentIDs:     []string{"M000001"},
				CreatedAt:    now.Format(time.RFC3339),
			},
			want:    []string{"simulation_id", "operator_key", "num_agents", "agent_ids", "created_at"},
			notWant: []string{"SimulationID", "OperatorKey", "AgentIDs"},
		},
		{
			name:    "tick",
			payload: tick.Response{Report: report},
			want:    []string{"report"},
			notWant: []string{"Report"},
		},
		{
			name: "status",
			payload: status.Response{
				SimulationID:      "sim-1",
				Tick:              3,
				AliveCount:        4,
				BenefactorBalance: 96,
				Agents:            []status.AgentStatus{},
				Bonds:             []status.BondStatus{},
				UpdatedAt:         now,
			},
			want:    []string{"simulation_id", "alive_count", "benefactor_balance", "agents", "bonds", "updated_at"},
			notWant: []string{"AliveCount", "BenefactorBalance", "UpdatedAt"},
		},
		{
			name:    "observe",
			payload: observe.Response{Observation: observation},
			want:    []string{"observation"},
			notWant: []string{"Observation"},
		},
		{
			name:    "replay",
			payload: replay.Response{Reports: []mind.TickReport{report}, Summary: replay.Summary{FromTick: 3, ToTick: 3, TicksCovered: 1}},
			want:    []string{"reports", "summary"},
			notWant: []string{"Reports", "Summary"},
		},
		{
			name:    "ledger",
			payload: ledger.Response{Entries: []mind.LedgerEntry{entry}},
			want:    []string{"entries"},
			notWant: []string{"Entries"},
		},
		{
			name: "restore",
			payload: restore.Response{
				SimulationID: "sim-1",
				OperatorKey:  "key",
				Tick:         3,
				AliveCount:   4,
				RestoredAt:   now.Format(time.RFC3339),
			},
			want:    []string{"simulation_id", "operator_key", "alive_count", "restored_at"},
			notWant: []string{"SimulationID", "AliveCount", "RestoredAt"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.payload)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			for _, key := range tc.want {
				if _, ok := got[key]; !ok {
					t.Fatalf("expected key %q in %s", key, string(b))
				}
			}
			for _, key := range tc.notWant {
				if _, ok := got[key]; ok {
					t.Fatalf("unexpected key %q in %s", key, string(b))
				}
			}
			if tc.name == "tick" {
				reportMap := asMap(got["report"])
				if _, ok := reportMap["minted_total"]; !ok {
					t.Fatalf("expected nested snake_case key report.minted_total in %s", string(b))
				}
				if _, ok := reportMap["MintedTotal"]; ok {
					t.Fatalf("unexpected nested key report.MintedTotal in %s", string(b))
				}
			}
			if tc.name == "observe" {
				obsMap := asMap(got["observation"])
				if _, ok := obsMap["agent_id"]; !ok {
					t.Fatalf("expected nested snake_case key observation.agent_id in %s", string(b))
				}
				runwayMap := asMap(obsMap["runway"])
				if _, ok := runwayMap["ticks_remaining"]; !ok {
					t.Fatalf("expected nested snake_case key observation.runway.ticks_remaining in %s", string(b))
				}
			}
			if tc.name == "replay" {
				summaryMap := asMap(got["summary"])
				if _, ok := summaryMap["ticks_covered"]; !ok {
					t.Fatalf("expected nested snake_case key summary.ticks_covered in %s", string(b))
				}
			}
		})
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
