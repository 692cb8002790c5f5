package engine

import (
	"math"
	"math/rand"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
)

// Outcome is the result of resolving one action against a defender. It
// carries no references to session state; the caller applies it.
type Outcome struct {
	Action game.Action
	Hit    bool
	// Damage is the final integer damage to apply to the defender
	// (already halved for a guarding defender, zero on a miss).
	Damage int
	// GuardBroken is set when the defender's guard absorbed part of
	// this hit and the stance is spent.
	GuardBroken bool
}

// Variance bounds for base-damage moves.
const (
	varianceMin = 0.8
	varianceMax = 1.2
)

// Resolve computes the damage outcome of one action. It is a pure
// function of its inputs plus draws from rng: nothing is mutated.
// Affordability and stat gates are the caller's responsibility.
func Resolve(rng *rand.Rand, cfg *game.CombatConfig, attacker, defender *game.Fighter, action game.Action) Outcome {
	move := cfg.Moves[action]
	out := Outcome{Action: action, Hit: true}

	// Hit roll only applies to moves that declare a chance; a miss still
	// consumes energy and still ends the turn.
	if move.HitChance > 0 && rng.Float64() > move.HitChance {
		out.Hit = false
		return out
	}

	dmg := 0
	switch {
	case move.MaxDamage > 0:
		// Direct draw from the configured range (room battles).
		dmg = move.MinDamage + rng.Intn(move.MaxDamage-move.MinDamage+1)
	case move.BaseDamage > 0:
		// Base damage scaled by a uniform variance factor (AI battles).
		factor := varianceMin + rng.Float64()*(varianceMax-varianceMin)
		dmg = int(math.Floor(float64(move.BaseDamage) * factor))
	}

	if dmg > 0 && defender.Guarding {
		dmg = dmg / 2
		out.GuardBroken = true
	}
	if dmg < 0 {
		dmg = 0
	}
	out.Damage = dmg
	return out
}
