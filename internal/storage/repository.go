package storage

import (
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/rewards"
)

// Repository is the persisted-state collaborator consumed by the battle
// core: player profiles in, reward grants and battle summaries out.
type Repository interface {
	// GetProfile returns the stored profile for the user, or
	// gorm.ErrRecordNotFound when none exists.
	GetProfile(userID string) (*game.Profile, error)
	// UpsertProfile creates a default profile on first contact and
	// refreshes the display name on later ones.
	UpsertProfile(userID, displayName, bodyTypeTag string) (*game.Profile, error)
	// ApplyRewards adds the reward deltas to the user's profile, bumps
	// the win/loss tally and handles level-ups.
	ApplyRewards(userID string, r rewards.Reward, won bool) error
	// RecordBattle persists the summary of a finished battle.
	RecordBattle(rec *game.BattleRecord) error
	// GetTopPlayers returns profiles ordered by wins, then experience.
	GetTopPlayers(limit int) ([]game.Profile, error)
	// GetBattleHistory returns the most recent battle records involving
	// the user, newest first.
	GetBattleHistory(userID string, limit int) ([]game.BattleRecord, error)
}
