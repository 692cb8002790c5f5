package storage

import (
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/dedupe"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/rewards"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

// Starting stats for brand-new profiles.
const (
	startingLevel     = 1
	startingStrength  = 20
	startingEndurance = 20
	startingCoins     = 100
)

func (r *sqliteRepository) GetProfile(userID string) (*game.Profile, error) {
	// Collapse concurrent loads of the same profile into one query.
	v, err, _ := dedupe.ProfileGroup.Do(userID, func() (interface{}, error) {
		var p game.Profile
		if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Profile), nil
}

func (r *sqliteRepository) UpsertProfile(userID, displayName, bodyTypeTag string) (*game.Profile, error) {
	var p game.Profile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		p = game.Profile{
			UserID:      userID,
			DisplayName: displayName,
			BodyTypeTag: bodyTypeTag,
			Level:       startingLevel,
			Strength:    startingStrength,
			Endurance:   startingEndurance,
			Coins:       startingCoins,
		}
		if err := r.db.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	changed := false
	if displayName != "" && displayName != p.DisplayName {
		p.DisplayName = displayName
		changed = true
	}
	if bodyTypeTag != "" && bodyTypeTag != p.BodyTypeTag {
		p.BodyTypeTag = bodyTypeTag
		changed = true
	}
	if changed {
		if err := r.db.Save(&p).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *sqliteRepository) ApplyRewards(userID string, rw rewards.Reward, won bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var p game.Profile
		if err := tx.Where("user_id = ?", userID).First(&p).Error; err != nil {
			return err
		}
		p.Experience += rw.Experience
		p.Strength += rw.Strength
		p.Endurance += rw.Endurance
		p.Coins += rw.Coins
		if won {
			p.Wins++
		} else {
			p.Losses++
		}
		// Flat level curve; experience carries over across level-ups.
		for p.Experience >= p.Level*game.ExperiencePerLevel {
			p.Experience -= p.Level * game.ExperiencePerLevel
			p.Level++
		}
		return tx.Save(&p).Error
	})
}

func (r *sqliteRepository) RecordBattle(rec *game.BattleRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.Profile, error) {
	var profiles []game.Profile
	if err := r.db.Order("wins DESC, experience DESC").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) GetBattleHistory(userID string, limit int) ([]game.BattleRecord, error) {
	var recs []game.BattleRecord
	err := r.db.
		Where("winner_id = ? OR loser_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
