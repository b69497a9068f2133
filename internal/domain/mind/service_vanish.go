package mind

// VanishResult captures one vanish cascade: the agent record plus every bond
// torn down and mission force-completed because of it.
type VanishResult struct {
	Vanished          VanishRecord
	BondsDissolved    []BondRecord
	MissionsCompleted []MissionRecord
}

// Vanish marks the agent vanished and cascades in the same tick: every bond
// holding it is dissolved, every such mission completed, every surviving
// mate's references cleared. Nothing dangling may survive the call.
func Vanish(w *World, agentID string, cause VanishCause, tick int64) VanishResult {
	a, ok := w.Agents[agentID]
	if !ok || !a.Alive() {
		return VanishResult{}
	}

	res := VanishResult{Vanished: VanishRecord{AgentID: agentID, Cause: cause, Age: a.Age, Tick: tick}}
	if a.BondID != "" {
		if b, ok := w.Bonds[a.BondID]; ok {
			br, mr := DissolveBond(w, b, "member vanished", tick)
			res.BondsDissolved = append(res.BondsDissolved, br)
			if mr != nil {
				res.MissionsCompleted = append(res.MissionsCompleted, *mr)
			}
		}
	}

	a.Status = StatusVanished
	a.VanishedTick = tick
	a.BondStatus = BondStatusUnbonded
	a.BondID = ""
	a.MateIDs = nil
	return res
}

// DissolveBond deletes the bond, unbonds every member and completes the
// mission regardless of its progress. Returns the dissolution record and the
// completed mission record, if the bond held one.
func DissolveBond(w *World, b *Bond, reason string, tick int64) (BondRecord, *MissionRecord) {
	for _, memberID := range b.MemberIDs {
		m, ok := w.Agents[memberID]
		if !ok {
			continue
		}
		m.BondStatus = BondStatusUnbonded
		m.BondID = ""
		m.MateIDs = nil
	}
	delete(w.Bonds, b.ID)

	record := BondRecord{
		BondID:    b.ID,
		MemberIDs: append([]string(nil), b.MemberIDs...),
		LeaderID:  b.LeaderID,
		MissionID: b.MissionID,
		Reason:    reason,
	}

	var missionRecord *MissionRecord
	if b.MissionID != "" {
		if m, ok := w.Missions[b.MissionID]; ok && !m.IsComplete {
			m.IsComplete = true
			m.CompletedTick = tick
			missionRecord = &MissionRecord{
				MissionID: m.ID,
				BondID:    m.BondID,
				Title:     m.Title,
				Progress:  m.Progress,
			}
		}
	}
	return record, missionRecord
}
