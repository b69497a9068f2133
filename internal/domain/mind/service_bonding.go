package mind

import "sort"

type BondingService struct{}

type BondingResult struct {
	Formed  []*Bond
	Records []ActionRecord
}

const (
	dropMissingTarget      = "missing target"
	dropSelfTarget         = "self target"
	dropUnknownTarget      = "unknown target"
	dropTargetVanished     = "target vanished"
	dropNoPendingRequest   = "no pending request from target"
	dropAlreadyBonded      = "already bonded"
	dropTargetBonded       = "target already bonded"
	dropCliqueConflict     = "lost clique conflict"
	dropSenderVanished     = "sender vanished"
	dropInsufficientSparks = "insufficient sparks"
)

// Resolve turns this tick's accepts into bonds. An accept is an edge between
// accepter and requester, valid only when the requester's bond request sits in
// the frozen generation (strictly earlier tick) and both ends are alive and
// unbonded. Valid edges are closed transitively: every party reachable along
// chained accepts lands in one clique and one bond, with the smallest id
// leading. Cliques form in deterministic order; an edge whose endpoint was
// claimed by an earlier clique is dropped, per the first-valid-clique rule.
func (BondingService) Resolve(w *World, accepts []PendingAction, tick int64) BondingResult {
	var res BondingResult

	type edge struct {
		accepter, requester string
	}
	var edges []edge
	parent := map[string]string{}
	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	record := func(p PendingAction, result ActionResultCode, reason string) {
		res.Records = append(res.Records, ActionRecord{
			AgentID:  p.AgentID,
			Intent:   p.Intent,
			TargetID: p.TargetID,
			Result:   result,
			Reason:   reason,
		})
	}

	pendingEdges := map[string][]PendingAction{}
	for _, p := range accepts {
		accepter, aOK := w.Agents[p.AgentID]
		requester, rOK := w.Agents[p.TargetID]
		switch {
		case p.TargetID == "":
			record(p, ActionDropped, dropMissingTarget)
		case p.TargetID == p.AgentID:
			record(p, ActionDropped, dropSelfTarget)
		case !aOK || !accepter.Alive():
			record(p, ActionDropped, dropSenderVanished)
		case !rOK:
			record(p, ActionDropped, dropUnknownTarget)
		case !requester.Alive():
			record(p, ActionDropped, dropTargetVanished)
		case !w.HasFrozenRequest(p.TargetID, p.AgentID):
			record(p, ActionDropped, dropNoPendingRequest)
		case accepter.BondStatus != BondStatusUnbonded:
			record(p, ActionDropped, dropAlreadyBonded)
		case requester.BondStatus != BondStatusUnbonded:
			record(p, ActionDropped, dropTargetBonded)
		default:
			for _, id := range []string{p.AgentID, p.TargetID} {
				if _, ok := parent[id]; !ok {
					parent[id] = id
				}
			}
			union(p.AgentID, p.TargetID)
			edges = append(edges, edge{accepter: p.AgentID, requester: p.TargetID})
			key := p.AgentID + "\x00" + p.TargetID
			pendingEdges[key] = append(pendingEdges[key], p)
		}
	}

	cliques := map[string][]string{}
	for id := range parent {
		root := find(id)
		cliques[root] = append(cliques[root], id)
	}
	roots := make([]string, 0, len(cliques))
	for root, members := range cliques {
		sort.Strings(members)
		cliques[root] = members
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool { return cliques[roots[i]][0] < cliques[roots[j]][0] })

	bonded := map[string]string{}
	for _, root := range roots {
		var members []string
		for _, id := range cliques[root] {
			a, ok := w.Agents[id]
			if ok && a.Alive() && a.BondStatus == BondStatusUnbonded {
				members = append(members, id)
			}
		}
		if len(members) < 2 {
			continue
		}
		b := &Bond{
			ID:          w.NextBondID(),
			MemberIDs:   members,
			LeaderID:    members[0],
			CreatedTick: tick,
		}
		w.Bonds[b.ID] = b
		for _, id := range members {
			a := w.Agents[id]
			a.BondID = b.ID
			a.BondStatus = BondStatusBonded
			if id == b.LeaderID {
				a.BondStatus = BondStatusLeader
			}
			a.MateIDs = matesOf(members, id)
		}
		for _, id := range members {
			bonded[id] = b.ID
		}
		res.Formed = append(res.Formed, b)
	}

	for _, e := range edges {
		key := e.accepter + "\x00" + e.requester
		for _, p := range pendingEdges[key] {
			if bonded[e.accepter] != "" && bonded[e.accepter] == bonded[e.requester] {
				record(p, ActionResolved, "")
			} else {
				record(p, ActionDropped, dropCliqueConflict)
			}
		}
	}
	return res
}

func matesOf(members []string, self string) []string {
	mates := make([]string, 0, len(members)-1)
	for _, id := range members {
		if id != self {
			mates = append(mates, id)
		}
	}
	return mates
}
