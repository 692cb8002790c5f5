package service

import (
	"math/rand"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/constants"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/logging"

	"github.com/google/uuid"
)

// Stat scaling of the generated opponent relative to the player.
const (
	easyStatScale = 0.75
	hardStatScale = 1.25
)

// StartAIBattle spawns a single-player session against a generated
// opponent. The human always acts first; the AI's turns run in-process
// through the same action resolution path as everyone else.
func (r *Registry) StartAIBattle(playerID, displayName, bodyTypeTag, difficulty string) (*game.Session, error) {
	profile, err := r.repo.UpsertProfile(playerID, displayName, bodyTypeTag)
	if err != nil {
		return nil, err
	}

	human := game.NewFighter(playerID, profile.DisplayName, profile.BodyTypeTag, game.BaseStats{
		Strength:  profile.Strength,
		Endurance: profile.Endurance,
		Level:     profile.Level,
	})

	seed := r.nextSeed()
	rng := rand.New(rand.NewSource(seed))
	personality := game.PersonalityForDifficulty(rng, difficulty)
	opponent := generateOpponent(personality, profile, difficulty)

	cfg := *game.AICombat
	cfg.TurnSeconds = int(r.cfg.AITurnTime.Seconds())
	sess := game.NewSession(uuid.NewString(), "", game.ModeAI, &cfg, human, opponent, 0, seed)
	sess.AI = &game.AIOpponent{
		FighterID:   opponent.ID,
		Personality: personality,
		Adaptation:  game.NewAdaptationState(),
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	go r.runTurnClock(sess)

	logging.Info("ai battle started", logging.Fields{
		constants.LogFieldSessionID: sess.ID,
		constants.LogFieldPlayerID:  playerID,
		"personality":               personality.Name,
		"difficulty":                difficulty,
	})

	sess.Mu.Lock()
	snap := sess.Snapshot()
	sess.Mu.Unlock()
	r.pub.Publish(BattleChannel(sess.ID), EventBattleStart, snap)
	return snap, nil
}

// generateOpponent builds the AI fighter's stat line around the player's
// profile so matches stay winnable on easy and threatening on hard.
func generateOpponent(p game.Personality, profile *game.Profile, difficulty string) *game.Fighter {
	scale := 1.0
	switch difficulty {
	case "easy":
		scale = easyStatScale
	case "hard":
		scale = hardStatScale
	}
	stats := game.BaseStats{
		Strength:  int(float64(profile.Strength) * scale),
		Endurance: int(float64(profile.Endurance) * scale),
		Level:     profile.Level,
	}
	return game.NewFighter("ai-"+uuid.NewString(), p.Name, "machine", stats)
}
