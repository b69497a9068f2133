package mind

type MissionService struct{}

// Create attaches a fresh mission to a newly formed bond. Missions are never
// retro-fitted: the only caller is bond formation, in the same tick.
func (MissionService) Create(w *World, b *Bond, content MissionContent, tick int64) *Mission {
	m := &Mission{
		ID:          w.NextMissionID(),
		BondID:      b.ID,
		Title:       content.Title,
		Description: content.Description,
		Goal:        content.Goal,
		LeaderID:    b.LeaderID,
		Tasks:       content.Tasks,
		CreatedTick: tick,
	}
	w.Missions[m.ID] = m
	b.MissionID = m.ID
	return m
}

type ProgressResult struct {
	Progress  MissionRecord
	Completed *MissionRecord
	Dissolved *BondRecord
}

// ApplyProgress folds an evaluator verdict into an in-progress mission. A
// complete mission is immutable, so a stale verdict against one is ignored.
// A verdict judging the goal met completes the mission and dissolves the
// owning bond in the same tick, returning its members to unbonded life.
func (MissionService) ApplyProgress(w *World, m *Mission, verdict MissionProgress, tick int64) ProgressResult {
	if m.IsComplete {
		return ProgressResult{}
	}
	m.Progress = verdict.Summary
	if len(verdict.Tasks) > 0 {
		m.Tasks = verdict.Tasks
	}

	res := ProgressResult{Progress: MissionRecord{
		MissionID: m.ID,
		BondID:    m.BondID,
		Title:     m.Title,
		Progress:  m.Progress,
	}}

	if !verdict.IsComplete {
		return res
	}

	m.IsComplete = true
	m.CompletedTick = tick
	completed := MissionRecord{
		MissionID: m.ID,
		BondID:    m.BondID,
		Title:     m.Title,
		Goal:      m.Goal,
		Progress:  m.Progress,
	}
	res.Completed = &completed

	if b, ok := w.Bonds[m.BondID]; ok {
		br, _ := DissolveBond(w, b, "mission complete", tick)
		res.Dissolved = &br
	}
	return res
}
