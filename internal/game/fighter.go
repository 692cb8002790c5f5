package game

// BaseStats is the immutable stat snapshot taken from the owning profile
// (or AI generation) when a battle session starts.
type BaseStats struct {
	Strength  int `json:"strength"`
	Endurance int `json:"endurance"`
	Level     int `json:"level"`
}

// Fighter holds one combatant's live battle data. Fighters are owned by
// the Room until a session is spawned, then exclusively by the session.
type Fighter struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	BodyTypeTag string    `json:"body_type_tag"`
	Stats       BaseStats `json:"base_stats"`
	Health      int       `json:"health"`
	MaxHealth   int       `json:"max_health"`
	Energy      int       `json:"energy"`
	MaxEnergy   int       `json:"max_energy"`
	// Guarding is set when the fighter spent their last turn defending
	// (AI-battle path); the next incoming hit is halved and the stance
	// is dropped.
	Guarding bool `json:"guarding"`
}

const (
	DefaultMaxHealth = 100
	DefaultMaxEnergy = 100
)

// NewFighter returns a fighter at full health and energy.
func NewFighter(id, displayName, bodyTypeTag string, stats BaseStats) *Fighter {
	return &Fighter{
		ID:          id,
		DisplayName: displayName,
		BodyTypeTag: bodyTypeTag,
		Stats:       stats,
		Health:      DefaultMaxHealth,
		MaxHealth:   DefaultMaxHealth,
		Energy:      DefaultMaxEnergy,
		MaxEnergy:   DefaultMaxEnergy,
	}
}

// ApplyDamage subtracts dmg from health, clamped at zero, and reports
// whether the fighter went down.
func (f *Fighter) ApplyDamage(dmg int) bool {
	if dmg < 0 {
		dmg = 0
	}
	f.Health -= dmg
	if f.Health < 0 {
		f.Health = 0
	}
	return f.Health == 0
}

// SpendEnergy deducts cost from the fighter's energy, clamped at zero.
// Callers must gate affordability before resolving the action.
func (f *Fighter) SpendEnergy(cost int) {
	f.Energy -= cost
	if f.Energy < 0 {
		f.Energy = 0
	}
}
