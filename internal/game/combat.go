package game

// Action is one of the fixed combat moves. The two battle modes use
// different move sets: room battles use attack/defend/special, AI battles
// use punch/kick/defend/special.
type Action string

const (
	ActionAttack  Action = "attack"
	ActionDefend  Action = "defend"
	ActionSpecial Action = "special"
	ActionPunch   Action = "punch"
	ActionKick    Action = "kick"
)

// Move describes the cost and damage profile of a single action within a
// combat configuration. A move either draws damage directly from
// [MinDamage, MaxDamage] (room battles) or scales BaseDamage by a uniform
// variance factor (AI battles); exactly one of the two styles is set.
type Move struct {
	EnergyCost int
	// Direct-range style (room battles).
	MinDamage int
	MaxDamage int
	// Base-damage style (AI battles). Damage = floor(BaseDamage * U[0.8,1.2]).
	BaseDamage int
	// HitChance is the probability the move connects. Zero means the move
	// always hits (room battles do not model misses).
	HitChance float64
	// Stat gates; zero means no requirement.
	MinStrength  int
	MinEndurance int
}

// CombatConfig names one of the two numeric tables governing a battle
// mode. The room and AI tables differ deliberately and must not be
// unified: each governs the balance of its own mode.
type CombatConfig struct {
	Name        string
	TurnSeconds int
	Moves       map[Action]Move
}

// HasMove reports whether the action exists in this configuration.
func (c *CombatConfig) HasMove(a Action) bool {
	_, ok := c.Moves[a]
	return ok
}

// RoomCombat is the player-vs-player table: attack/defend/special with
// fixed damage ranges and a 30 second turn clock. Defend counters for a
// small amount of damage rather than raising a stance.
var RoomCombat = &CombatConfig{
	Name:        "room",
	TurnSeconds: 30,
	Moves: map[Action]Move{
		ActionAttack:  {EnergyCost: 10, MinDamage: 15, MaxDamage: 40},
		ActionDefend:  {EnergyCost: 5, MinDamage: 5, MaxDamage: 15},
		ActionSpecial: {EnergyCost: 25, MinDamage: 20, MaxDamage: 55},
	},
}

// AICombat is the single-player table: punch/kick/defend/special with
// per-move hit chances, base damage scaled by a [0.8, 1.2] variance roll
// and a 10 second turn clock. Special is locked behind strength and
// endurance of 40.
var AICombat = &CombatConfig{
	Name:        "ai",
	TurnSeconds: 10,
	Moves: map[Action]Move{
		ActionPunch:   {EnergyCost: 10, BaseDamage: 18, HitChance: 0.85},
		ActionKick:    {EnergyCost: 15, BaseDamage: 26, HitChance: 0.75},
		ActionDefend:  {EnergyCost: 5},
		ActionSpecial: {EnergyCost: 40, BaseDamage: 42, HitChance: 0.90, MinStrength: 40, MinEndurance: 40},
	},
}
