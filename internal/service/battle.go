package service

import (
	"strconv"
	"time"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/constants"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/engine"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/logging"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/rewards"
)

// SubmitAction applies one combat action to a fighting session. Rejected
// actions leave the session untouched. In AI mode the opponent's reply
// turn is selected and resolved before the call returns, so the session
// comes back with the human on turn again (unless somebody went down).
func (r *Registry) SubmitAction(sessionID, actorID string, action game.Action) (*game.Session, error) {
	sess, err := r.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Mu.Lock()
	if sess.Status != game.SessionFighting {
		sess.Mu.Unlock()
		return nil, ErrSessionFinished
	}
	if sess.CurrentTurn != actorID {
		sess.Mu.Unlock()
		return nil, ErrNotYourTurn
	}
	if err := gateAction(sess, actorID, action); err != nil {
		sess.Mu.Unlock()
		return nil, err
	}

	r.resolveLocked(sess, actorID, action)

	if sess.Mode == game.ModeAI && sess.Status == game.SessionFighting && sess.CurrentTurn == sess.AI.FighterID {
		sess.AI.Adaptation.Observe(action)
		r.takeAITurnLocked(sess)
	}

	snap := sess.Snapshot()
	finished := sess.Status == game.SessionFinished
	sess.Mu.Unlock()

	r.pub.Publish(BattleChannel(sess.ID), EventBattleUpdate, snap)
	if finished {
		r.concludeBattle(sess, snap)
	}
	return snap, nil
}

// SessionByID returns a snapshot of a live session.
func (r *Registry) SessionByID(sessionID string) (*game.Session, error) {
	sess, err := r.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	return sess.Snapshot(), nil
}

func (r *Registry) session(sessionID string) (*game.Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// gateAction validates affordability and stat requirements without
// mutating anything. Caller must hold the session lock.
func gateAction(sess *game.Session, actorID string, action game.Action) error {
	move, ok := sess.Config.Moves[action]
	if !ok {
		return ErrUnknownAction
	}
	actor := sess.Fighters[actorID]
	if actor.Energy < move.EnergyCost {
		return ErrInsufficientEnergy
	}
	if move.MinStrength > 0 && actor.Stats.Strength < move.MinStrength {
		return ErrSpecialLocked
	}
	if move.MinEndurance > 0 && actor.Stats.Endurance < move.MinEndurance {
		return ErrSpecialLocked
	}
	return nil
}

// resolveLocked runs one gated action through the resolver and applies
// the outcome: energy is spent even on a miss, damage is clamped, the
// log grows, and either the turn switches or the battle finishes. When
// both fighters would hit zero together the actor stands: the defender's
// death ends the battle in the attacker's favor. Caller must hold the
// session lock.
func (r *Registry) resolveLocked(sess *game.Session, actorID string, action game.Action) {
	attacker := sess.Fighters[actorID]
	defender := sess.Opponent(actorID)
	move := sess.Config.Moves[action]

	out := engine.Resolve(sess.Rng, sess.Config, attacker, defender, action)

	attacker.SpendEnergy(move.EnergyCost)
	attacker.Guarding = false
	if action == game.ActionDefend && sess.Mode == game.ModeAI {
		attacker.Guarding = true
	}

	down := false
	if out.Hit && out.Damage > 0 {
		down = defender.ApplyDamage(out.Damage)
		if out.GuardBroken {
			defender.Guarding = false
		}
	}

	sess.TurnCount++
	sess.TimeoutStreak[actorID] = 0
	sess.Log(describeOutcome(attacker, defender, sess.Mode, out))

	if down {
		sess.Log(defender.DisplayName + " is down! " + attacker.DisplayName + " wins the battle")
		sess.Finish(actorID)
		return
	}
	sess.CurrentTurn = defender.ID
	sess.TurnTimeLeft = sess.Config.TurnSeconds
}

// describeOutcome builds the human-readable combat log line for one
// resolved action.
func describeOutcome(attacker, defender *game.Fighter, mode game.SessionMode, out engine.Outcome) string {
	name := attacker.DisplayName
	switch {
	case !out.Hit:
		return name + "'s " + string(out.Action) + " misses " + defender.DisplayName
	case out.Action == game.ActionDefend && mode == game.ModeAI:
		return name + " raises a guard"
	case out.Action == game.ActionDefend:
		return name + " braces and counters " + defender.DisplayName + " for " + strconv.Itoa(out.Damage) + " damage"
	case out.GuardBroken:
		return name + "'s " + string(out.Action) + " breaks through the guard of " + defender.DisplayName + " for " + strconv.Itoa(out.Damage) + " damage"
	default:
		return name + "'s " + string(out.Action) + " hits " + defender.DisplayName + " for " + strconv.Itoa(out.Damage) + " damage"
	}
}

// takeAITurnLocked selects and resolves the AI opponent's move. Caller
// must hold the session lock with the AI on turn.
func (r *Registry) takeAITurnLocked(sess *game.Session) {
	ai := sess.Fighters[sess.AI.FighterID]
	human := sess.Opponent(ai.ID)

	action := engine.NewDecider(sess.Rng).SelectAction(sess.AI.Personality, ai, human, sess.AI.Adaptation)
	if ai.Energy < sess.Config.Moves[action].EnergyCost {
		// Every move is out of reach; the turn passes back.
		sess.Log(ai.DisplayName + " is too exhausted to act")
		sess.CurrentTurn = human.ID
		sess.TurnTimeLeft = sess.Config.TurnSeconds
		return
	}
	r.resolveLocked(sess, ai.ID, action)
}

// runTurnClock is the per-session scheduled task: one tick per second
// while the session fights, stopped by the session's Done channel so no
// timer outlives its session.
func (r *Registry) runTurnClock(sess *game.Session) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-sess.Done:
			return
		case <-ticker.C:
			if r.tickSession(sess) {
				return
			}
		}
	}
}

// tickSession decrements the turn clock and handles expiry; it reports
// whether the clock goroutine should exit.
func (r *Registry) tickSession(sess *game.Session) bool {
	sess.Mu.Lock()
	if sess.Status != game.SessionFighting {
		sess.Mu.Unlock()
		return true
	}
	sess.TurnTimeLeft--
	if sess.TurnTimeLeft > 0 {
		left := sess.TurnTimeLeft
		sess.Mu.Unlock()
		r.pub.Publish(BattleChannel(sess.ID), EventBattleTimer, map[string]interface{}{
			"turn_time_left": left,
		})
		return false
	}

	r.timeoutLocked(sess)
	snap := sess.Snapshot()
	finished := sess.Status == game.SessionFinished
	sess.Mu.Unlock()

	r.pub.Publish(BattleChannel(sess.ID), EventBattleUpdate, snap)
	if finished {
		r.concludeBattle(sess, snap)
		return true
	}
	return false
}

// timeoutLocked applies the turn-expiry policy: the slow fighter loses
// the turn; a third consecutive timeout forfeits the match. Caller must
// hold the session lock.
func (r *Registry) timeoutLocked(sess *game.Session) {
	slow := sess.Fighters[sess.CurrentTurn]
	opp := sess.Opponent(slow.ID)

	sess.TimeoutStreak[slow.ID]++
	if sess.TimeoutStreak[slow.ID] >= r.cfg.MaxTimeoutStreak {
		sess.Log(slow.DisplayName + " forfeits after repeated inactivity")
		sess.Finish(opp.ID)
		return
	}

	sess.Log(slow.DisplayName + " hesitates and loses the turn")
	sess.CurrentTurn = opp.ID
	sess.TurnTimeLeft = sess.Config.TurnSeconds

	if sess.Mode == game.ModeAI && opp.ID == sess.AI.FighterID {
		r.takeAITurnLocked(sess)
	}
}

// concludeBattle runs the once-only post-battle effects: reward both
// human participants, persist the record, emit battle.ended and tear the
// session (and its room) down.
func (r *Registry) concludeBattle(sess *game.Session, snap *game.Session) {
	sess.ConcludeOnce.Do(func() {
		winnerID := snap.WinnerID
		loserID := snap.Opponent(winnerID).ID
		duration := snap.EndedAt.Sub(snap.StartedAt)

		grants := make(map[string]rewards.Reward, 2)
		for id, f := range snap.Fighters {
			if snap.AI != nil && snap.AI.FighterID == id {
				continue
			}
			opp := snap.Opponent(id)
			rw := rewards.Calculate(id == winnerID, f.Stats.Level, opp.Stats.Level, duration, snap.TurnCount, f.Health)
			grants[id] = rw
			if err := r.repo.ApplyRewards(id, rw, id == winnerID); err != nil {
				logging.Error("failed to apply rewards", err, logging.Fields{
					constants.LogFieldUserID:    id,
					constants.LogFieldSessionID: snap.ID,
				})
			}
		}

		rec := &game.BattleRecord{
			SessionID:  snap.ID,
			Mode:       string(snap.Mode),
			WinnerID:   winnerID,
			LoserID:    loserID,
			Turns:      snap.TurnCount,
			DurationMs: duration.Milliseconds(),
			Wager:      snap.Wager,
		}
		if err := r.repo.RecordBattle(rec); err != nil {
			logging.Error("failed to record battle", err, logging.Fields{constants.LogFieldSessionID: snap.ID})
		}

		r.pub.Publish(BattleChannel(snap.ID), EventBattleEnded, map[string]interface{}{
			"winner_id": winnerID,
			"loser_id":  loserID,
			"rewards":   grants,
		})

		r.mu.Lock()
		delete(r.sessions, snap.ID)
		r.mu.Unlock()
		if snap.RoomID != "" {
			r.mu.RLock()
			room := r.roomsByID[snap.RoomID]
			r.mu.RUnlock()
			if room != nil {
				room.Mu.Lock()
				room.Closed = true
				code := room.Code
				room.Mu.Unlock()
				r.removeRoom(snap.RoomID, code)
			}
		}

		logging.Info("battle concluded", logging.Fields{
			constants.LogFieldSessionID: snap.ID,
			constants.LogFieldWinnerID:  winnerID,
			"turns":                     snap.TurnCount,
		})
	})
}
