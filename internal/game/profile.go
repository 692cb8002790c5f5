package game

import "gorm.io/gorm"

// Profile stores a player's persisted identity and aggregate progression.
// Battle sessions snapshot stats from here at start; rewards are applied
// back when a battle ends.
type Profile struct {
	gorm.Model
	UserID      string `json:"user_id" gorm:"uniqueIndex"`
	DisplayName string `json:"display_name"`
	BodyTypeTag string `json:"body_type_tag"`
	Level       int    `json:"level"`
	Strength    int    `json:"strength"`
	Endurance   int    `json:"endurance"`
	Experience  int    `json:"experience"`
	Coins       int    `json:"coins"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

func (Profile) TableName() string { return "player_profiles" }

// ExperiencePerLevel is the flat level-up threshold applied when rewards
// push experience past the current level's requirement.
const ExperiencePerLevel = 500

// BattleRecord is the persisted summary of one finished battle.
type BattleRecord struct {
	gorm.Model
	SessionID  string `json:"session_id" gorm:"index"`
	Mode       string `json:"mode"`
	WinnerID   string `json:"winner_id"`
	LoserID    string `json:"loser_id"`
	Turns      int    `json:"turns"`
	DurationMs int64  `json:"duration_ms"`
	Wager      int    `json:"wager"`
}

func (BattleRecord) TableName() string { return "battle_records" }
