// Package rewards converts a finished battle's outcome into stat,
// experience and coin deltas. Everything here is a total, side-effect
// free function: invalid inputs are a caller contract violation.
package rewards

import (
	"math"
	"time"
)

// Reward is the set of deltas granted to one player for one battle.
type Reward struct {
	Experience int `json:"experience"`
	Strength   int `json:"strength"`
	Endurance  int `json:"endurance"`
	Coins      int `json:"coins"`
}

// Base rewards. The winner is strictly ahead of the loser on every stat
// so reward monotonicity holds under any shared multiplier.
var (
	winnerBase = Reward{Experience: 100, Strength: 3, Endurance: 3, Coins: 50}
	loserBase  = Reward{Experience: 25, Strength: 1, Endurance: 1, Coins: 10}
)

const (
	levelDiffStep      = 0.1
	healthBonusFactor  = 1.2
	healthBonusCutoff  = 50
	fastBonusFactor    = 1.3
	fastBonusTurns     = 10
	quickBonusFactor   = 1.1
	quickBonusTurns    = 20
	slowPenaltyFactor  = 0.8
	slowPenaltyAfter   = 5 * time.Minute
	statMultiplierMin  = 0.5
	levelMultiplierMin = 0.0
)

// Calculate computes one player's reward for a finished battle.
// won indicates whether this player is the winner; opponentLevel rewards
// upsets and discounts farming; finalHealth, turns and duration feed the
// performance multipliers.
func Calculate(won bool, playerLevel, opponentLevel int, duration time.Duration, turns, finalHealth int) Reward {
	base := loserBase
	if won {
		base = winnerBase
	}

	mult := 1.0 + levelDiffStep*float64(opponentLevel-playerLevel)
	if mult < levelMultiplierMin {
		mult = levelMultiplierMin
	}
	if finalHealth > healthBonusCutoff {
		mult *= healthBonusFactor
	}
	switch {
	case turns < fastBonusTurns:
		mult *= fastBonusFactor
	case turns < quickBonusTurns:
		mult *= quickBonusFactor
	}
	if duration > slowPenaltyAfter {
		mult *= slowPenaltyFactor
	}

	// Stat gains are floored at half of base; experience and coins track
	// the raw multiplier.
	statMult := mult
	if statMult < statMultiplierMin {
		statMult = statMultiplierMin
	}

	return Reward{
		Experience: roundNearest(float64(base.Experience) * mult),
		Strength:   roundNearest(float64(base.Strength) * statMult),
		Endurance:  roundNearest(float64(base.Endurance) * statMult),
		Coins:      roundNearest(float64(base.Coins) * mult),
	}
}

func roundNearest(v float64) int {
	return int(math.Round(v))
}
