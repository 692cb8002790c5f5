package game

import "math/rand"

type FightingStyle string

const (
	StyleAggressive    FightingStyle = "aggressive"
	StyleDefensive     FightingStyle = "defensive"
	StyleTactical      FightingStyle = "tactical"
	StyleUnpredictable FightingStyle = "unpredictable"
	StyleBalanced      FightingStyle = "balanced"
)

type LowHealthBehavior string

const (
	LowHealthDesperate  LowHealthBehavior = "desperate"
	LowHealthDefensive  LowHealthBehavior = "defensive"
	LowHealthCalculated LowHealthBehavior = "calculated"
)

type EnergyManagement string

const (
	EnergyWasteful     EnergyManagement = "wasteful"
	EnergyConservative EnergyManagement = "conservative"
	EnergyEfficient    EnergyManagement = "efficient"
)

// ActionWeights are the base selection weights over the three action
// families. The attack weight is split between punch and kick when the
// decision engine draws a concrete move.
type ActionWeights struct {
	Attack  float64 `json:"attack"`
	Defend  float64 `json:"defend"`
	Special float64 `json:"special"`
}

// Traits are 0–100 tuning knobs read by the decision engine.
type Traits struct {
	Aggression   int `json:"aggression"`
	Patience     int `json:"patience"`
	Intelligence int `json:"intelligence"`
	Adaptability int `json:"adaptability"`
	Consistency  int `json:"consistency"`
}

// Personality is the immutable configuration governing an AI opponent's
// action weighting and adaptive behavior for the whole match.
type Personality struct {
	Name          string            `json:"name"`
	FightingStyle FightingStyle     `json:"fighting_style"`
	Weights       ActionWeights     `json:"action_weights"`
	Traits        Traits            `json:"traits"`
	LowHealth     LowHealthBehavior `json:"low_health_behavior"`
	Energy        EnergyManagement  `json:"energy_management"`
	// CounterAttack and ComboChance are percentages (0–100).
	CounterAttack int `json:"counter_attack"`
	ComboChance   int `json:"combo_chance"`
}

// Personalities is the static preset registry, constructed at startup.
// Names are stable identifiers used by difficulty selection.
var Personalities = map[string]Personality{
	"berserker": {
		Name:          "Berserker",
		FightingStyle: StyleAggressive,
		Weights:       ActionWeights{Attack: 60, Defend: 10, Special: 30},
		Traits:        Traits{Aggression: 90, Patience: 15, Intelligence: 35, Adaptability: 30, Consistency: 70},
		LowHealth:     LowHealthDesperate,
		Energy:        EnergyWasteful,
		CounterAttack: 65,
		ComboChance:   55,
	},
	"guardian": {
		Name:          "Guardian",
		FightingStyle: StyleDefensive,
		Weights:       ActionWeights{Attack: 30, Defend: 55, Special: 15},
		Traits:        Traits{Aggression: 25, Patience: 85, Intelligence: 55, Adaptability: 45, Consistency: 80},
		LowHealth:     LowHealthDefensive,
		Energy:        EnergyConservative,
		CounterAttack: 30,
		ComboChance:   15,
	},
	"tactician": {
		Name:          "Tactician",
		FightingStyle: StyleTactical,
		Weights:       ActionWeights{Attack: 40, Defend: 35, Special: 25},
		Traits:        Traits{Aggression: 50, Patience: 70, Intelligence: 85, Adaptability: 75, Consistency: 75},
		LowHealth:     LowHealthCalculated,
		Energy:        EnergyEfficient,
		CounterAttack: 50,
		ComboChance:   35,
	},
	"wildcard": {
		Name:          "Wildcard",
		FightingStyle: StyleUnpredictable,
		Weights:       ActionWeights{Attack: 40, Defend: 25, Special: 35},
		Traits:        Traits{Aggression: 60, Patience: 30, Intelligence: 45, Adaptability: 60, Consistency: 20},
		LowHealth:     LowHealthDesperate,
		Energy:        EnergyWasteful,
		CounterAttack: 45,
		ComboChance:   45,
	},
	"mastermind": {
		Name:          "Mastermind",
		FightingStyle: StyleBalanced,
		Weights:       ActionWeights{Attack: 38, Defend: 32, Special: 30},
		Traits:        Traits{Aggression: 55, Patience: 75, Intelligence: 95, Adaptability: 90, Consistency: 85},
		LowHealth:     LowHealthCalculated,
		Energy:        EnergyEfficient,
		CounterAttack: 60,
		ComboChance:   40,
	},
}

// PersonalityForDifficulty maps a difficulty tier to a preset. Unknown
// difficulties fall back to medium.
func PersonalityForDifficulty(rng *rand.Rand, difficulty string) Personality {
	switch difficulty {
	case "easy":
		return Personalities["guardian"]
	case "hard":
		if rng.Intn(2) == 0 {
			return Personalities["berserker"]
		}
		return Personalities["mastermind"]
	default:
		if rng.Intn(2) == 0 {
			return Personalities["tactician"]
		}
		return Personalities["wildcard"]
	}
}

const AdaptationWindow = 5

// AdaptationState is the per-opponent rolling memory mutated every turn:
// the last few observed player actions, lifetime counts and the AI's own
// previous move.
type AdaptationState struct {
	RecentPlayerActions []Action       `json:"recent_player_actions"`
	ActionCounts        map[Action]int `json:"action_counts"`
	LastAIAction        Action         `json:"last_ai_action"`
}

func NewAdaptationState() *AdaptationState {
	return &AdaptationState{
		RecentPlayerActions: make([]Action, 0, AdaptationWindow),
		ActionCounts:        make(map[Action]int),
	}
}

// Observe pushes the player's most recent action into the bounded window
// and bumps its lifetime count.
func (a *AdaptationState) Observe(act Action) {
	a.RecentPlayerActions = append(a.RecentPlayerActions, act)
	if len(a.RecentPlayerActions) > AdaptationWindow {
		a.RecentPlayerActions = a.RecentPlayerActions[1:]
	}
	a.ActionCounts[act]++
}

// LastPlayerAction returns the most recent observed player action, or ""
// when no action has been observed yet.
func (a *AdaptationState) LastPlayerAction() Action {
	if len(a.RecentPlayerActions) == 0 {
		return ""
	}
	return a.RecentPlayerActions[len(a.RecentPlayerActions)-1]
}

// TotalObserved is the count of all recorded player actions.
func (a *AdaptationState) TotalObserved() int {
	total := 0
	for _, n := range a.ActionCounts {
		total += n
	}
	return total
}

// AIOpponent extends a Fighter with the personality model and the
// adaptation memory for one single-player match.
type AIOpponent struct {
	FighterID   string           `json:"fighter_id"`
	Personality Personality      `json:"personality"`
	Adaptation  *AdaptationState `json:"adaptation_state"`
}
