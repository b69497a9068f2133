package mind

import "math/rand/v2"

type RaidService struct{}

// Resolve settles one raid as a weighted coin flip. Strengths are taken at
// resolution time, after upkeep and minting have already moved sparks this
// tick. An attacker without the stake is refused outright, which is a
// different outcome from losing the flip. Win steals a uniform amount in
// [1, max] capped at the defender's balance; loss hands the stake to the
// defender. Vanishes caused by the transfer are the caller's sweep to run.
func (RaidService) Resolve(w *World, rng *rand.Rand, attackerID, defenderID string, tick int64) (RaidRecord, []LedgerEntry) {
	attacker := w.Agents[attackerID]
	defender := w.Agents[defenderID]

	rec := RaidRecord{
		AttackerID:       attackerID,
		DefenderID:       defenderID,
		AttackerStrength: attacker.Strength(),
		DefenderStrength: defender.Strength(),
		Tick:             tick,
	}

	if attacker.Sparks < w.Rules.RaidStake {
		rec.Outcome = RaidRefused
		return rec, nil
	}

	rec.SuccessProbability = float64(rec.AttackerStrength) / float64(rec.AttackerStrength+rec.DefenderStrength)

	var entries []LedgerEntry
	if rng.Float64() < rec.SuccessProbability {
		steal := rng.IntN(w.Rules.RaidStealMax) + 1
		if steal > defender.Sparks {
			steal = defender.Sparks
		}
		rec.Outcome = RaidWon
		rec.Transfer = steal
		if steal > 0 {
			defender.Sparks -= steal
			attacker.Sparks += steal
			entries = append(entries, LedgerEntry{
				Source:      defenderID,
				Destination: attackerID,
				Amount:      steal,
				Reason:      ReasonRaidSteal,
				Tick:        tick,
			})
		}
	} else {
		stake := w.Rules.RaidStake
		attacker.Sparks -= stake
		defender.Sparks += stake
		rec.Outcome = RaidLost
		rec.Transfer = -stake
		entries = append(entries, LedgerEntry{
			Source:      attackerID,
			Destination: defenderID,
			Amount:      stake,
			Reason:      ReasonRaidStake,
			Tick:        tick,
		})
	}
	return rec, entries
}
