package engine

import (
	"math/rand"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
)

// Decider selects moves for AI opponents. It holds only the random
// source handed to it, so a seeded source makes every decision
// reproducible in tests.
type Decider struct {
	rng *rand.Rand
}

func NewDecider(rng *rand.Rand) *Decider {
	return &Decider{rng: rng}
}

// moveWeights are the concrete per-move selection weights after all
// personality modifiers. The attack family weight is split between punch
// and kick before the draw so low-energy gates can act on kick alone.
type moveWeights struct {
	punch, kick, defend, special float64
}

const (
	punchShare = 0.6
	kickShare  = 0.4
)

// SelectAction picks the AI's next move from its personality, the
// current standing of both fighters and the adaptation memory. It
// mutates only adapt.LastAIAction (observing player actions is done by
// the battle loop as they resolve).
func (d *Decider) SelectAction(p game.Personality, self, opponent *game.Fighter, adapt *game.AdaptationState) game.Action {
	w := familyWeights{
		attack:  p.Weights.Attack,
		defend:  p.Weights.Defend,
		special: p.Weights.Special,
	}

	d.applyLowHealth(&w, p, self, opponent)
	d.applyEnergyManagement(&w, p, self)
	d.applyCounterAttack(&w, p, adapt)
	d.applyAdaptiveIntelligence(&w, p, adapt)
	d.applyUnpredictability(&w, p)
	d.applyCombo(&w, p, adapt)

	mw := moveWeights{
		punch:   w.attack * punchShare,
		kick:    w.attack * kickShare,
		defend:  w.defend,
		special: w.special,
	}
	d.applyEnergyGates(&mw, self)

	chosen := d.draw(mw)
	adapt.LastAIAction = chosen
	return chosen
}

// familyWeights operate on the three action families before the split
// into concrete moves.
type familyWeights struct {
	attack, defend, special float64
}

const (
	lowHealthThreshold = 0.3
	lowEnergyThreshold = 0.4
)

// applyLowHealth shifts weights once the AI drops under 30% health,
// according to the personality's low-health behavior.
func (d *Decider) applyLowHealth(w *familyWeights, p game.Personality, self, opponent *game.Fighter) {
	if float64(self.Health)/float64(self.MaxHealth) >= lowHealthThreshold {
		return
	}
	switch p.LowHealth {
	case game.LowHealthDesperate:
		w.special *= 1.8
		w.attack *= 1.4
		w.defend *= 0.5
	case game.LowHealthDefensive:
		w.defend *= 2.5
		w.attack *= 0.6
		w.special *= 0.5
	case game.LowHealthCalculated:
		selfRatio := float64(self.Health) / float64(self.MaxHealth)
		oppRatio := float64(opponent.Health) / float64(opponent.MaxHealth)
		if oppRatio <= selfRatio {
			// Opponent is closer to death: push for the finisher.
			w.special *= 2.0
			w.attack *= 1.3
		} else {
			w.defend *= 2.0
			w.attack *= 0.7
			w.special *= 0.6
		}
	}
}

// applyEnergyManagement shifts weights once the AI drops under 40%
// energy, according to the personality's energy management.
func (d *Decider) applyEnergyManagement(w *familyWeights, p game.Personality, self *game.Fighter) {
	if float64(self.Energy)/float64(self.MaxEnergy) >= lowEnergyThreshold {
		return
	}
	switch p.Energy {
	case game.EnergyWasteful:
		// Burns energy regardless.
	case game.EnergyConservative:
		w.special *= 0.2
		w.defend *= 1.6
	case game.EnergyEfficient:
		w.special *= 0.5
		w.attack *= 1.3
	}
}

// applyCounterAttack biases toward offense when the player's last move
// was not a defend, with probability CounterAttack%.
func (d *Decider) applyCounterAttack(w *familyWeights, p game.Personality, adapt *game.AdaptationState) {
	last := adapt.LastPlayerAction()
	if last == "" || last == game.ActionDefend {
		return
	}
	if d.rng.Intn(100) < p.CounterAttack {
		w.attack *= 1.5
		w.special *= 1.3
	}
}

// applyAdaptiveIntelligence reads the frequency distribution of the
// player's recorded actions and counters the dominant habit. Only
// personalities with intelligence above 50 adapt, and only after three
// observed turns.
func (d *Decider) applyAdaptiveIntelligence(w *familyWeights, p game.Personality, adapt *game.AdaptationState) {
	if p.Traits.Intelligence <= 50 {
		return
	}
	total := adapt.TotalObserved()
	if total < 3 {
		return
	}
	specialFreq := float64(adapt.ActionCounts[game.ActionSpecial]) / float64(total)
	defendFreq := float64(adapt.ActionCounts[game.ActionDefend]) / float64(total)
	offenseFreq := float64(adapt.ActionCounts[game.ActionPunch]+
		adapt.ActionCounts[game.ActionKick]+
		adapt.ActionCounts[game.ActionAttack]) / float64(total)

	switch {
	case specialFreq > 0.4:
		w.defend *= 1.6
	case defendFreq > 0.4:
		w.special *= 1.5
	case offenseFreq > 0.6:
		w.defend *= 1.3
	}
}

// applyUnpredictability jitters every weight with probability
// (100 - consistency)%: each weight gets an independent factor in
// [0.5, 1.5].
func (d *Decider) applyUnpredictability(w *familyWeights, p game.Personality) {
	if d.rng.Intn(100) >= 100-p.Traits.Consistency {
		return
	}
	w.attack *= 0.5 + d.rng.Float64()
	w.defend *= 0.5 + d.rng.Float64()
	w.special *= 0.5 + d.rng.Float64()
}

// applyCombo keeps the pressure on: if the AI's own previous move was
// offensive, boost offense again with probability ComboChance%.
func (d *Decider) applyCombo(w *familyWeights, p game.Personality, adapt *game.AdaptationState) {
	last := adapt.LastAIAction
	if last == "" || last == game.ActionDefend {
		return
	}
	if d.rng.Intn(100) < p.ComboChance {
		w.attack *= 1.4
		w.special *= 1.2
	}
}

// applyEnergyGates zeroes or dampens moves the AI cannot, or should not,
// afford. These are hard floors applied after every soft modifier.
func (d *Decider) applyEnergyGates(mw *moveWeights, self *game.Fighter) {
	if self.Energy < 25 {
		mw.special = 0
	}
	if self.Energy < 15 {
		mw.kick *= 0.5
	}
	if self.Energy < 10 {
		mw.kick = 0
	}
	// Never weight a move the fighter cannot pay for or is stat-locked
	// out of; the draw must not pick a move the resolver would reject.
	for a, move := range game.AICombat.Moves {
		locked := self.Energy < move.EnergyCost ||
			(move.MinStrength > 0 && self.Stats.Strength < move.MinStrength) ||
			(move.MinEndurance > 0 && self.Stats.Endurance < move.MinEndurance)
		if !locked {
			continue
		}
		switch a {
		case game.ActionPunch:
			mw.punch = 0
		case game.ActionKick:
			mw.kick = 0
		case game.ActionDefend:
			mw.defend = 0
		case game.ActionSpecial:
			mw.special = 0
		}
	}
}

// draw performs a single weighted random selection. A zero total falls
// back to the primary offensive move.
func (d *Decider) draw(mw moveWeights) game.Action {
	total := mw.punch + mw.kick + mw.defend + mw.special
	if total <= 0 {
		return game.ActionPunch
	}
	r := d.rng.Float64() * total
	switch {
	case r < mw.punch:
		return game.ActionPunch
	case r < mw.punch+mw.kick:
		return game.ActionKick
	case r < mw.punch+mw.kick+mw.defend:
		return game.ActionDefend
	default:
		return game.ActionSpecial
	}
}
