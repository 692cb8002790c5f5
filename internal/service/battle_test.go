package service

import (
	"testing"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
)

// spawnBattle runs the full room flow and returns the registry, repo and
// the live (not snapshot) session so tests can arrange fighter state.
func spawnBattle(t *testing.T) (*Registry, *mockRepo, *game.Session) {
	t.Helper()
	r, repo := newTestRegistry()
	room, err := r.CreateRoom("p1", "P1", "", 100)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := r.JoinRoom(room.Code, "p2", "P2", ""); err != nil {
		t.Fatalf("join room: %v", err)
	}
	if _, err := r.MarkReady(room.ID, "p1"); err != nil {
		t.Fatalf("ready p1: %v", err)
	}
	snap, err := r.MarkReady(room.ID, "p2")
	if err != nil || snap == nil {
		t.Fatalf("ready p2: sess=%v err=%v", snap, err)
	}
	r.mu.RLock()
	sess := r.sessions[snap.ID]
	r.mu.RUnlock()
	return r, repo, sess
}

func TestSubmitAction_AttackSwitchesTurn(t *testing.T) {
	r, _, sess := spawnBattle(t)

	snap, err := r.SubmitAction(sess.ID, "p1", game.ActionAttack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Fighters["p1"].Energy != 90 {
		t.Fatalf("attacker energy %d, want 90", snap.Fighters["p1"].Energy)
	}
	dmg := 100 - snap.Fighters["p2"].Health
	if dmg < 15 || dmg > 40 {
		t.Fatalf("attack damage %d outside [15,40]", dmg)
	}
	if snap.CurrentTurn != "p2" {
		t.Fatalf("turn %s after p1 acts, want p2", snap.CurrentTurn)
	}
	if snap.TurnCount != 1 {
		t.Fatalf("turn count %d, want 1", snap.TurnCount)
	}
	if len(snap.CombatLog) == 0 {
		t.Fatalf("combat log is empty after a resolved action")
	}
}

func TestSubmitAction_OutOfTurnRejected(t *testing.T) {
	r, _, sess := spawnBattle(t)

	if _, err := r.SubmitAction(sess.ID, "p2", game.ActionAttack); err != ErrNotYourTurn {
		t.Fatalf("got %v, want ErrNotYourTurn", err)
	}
	sess.Mu.Lock()
	unchanged := sess.Fighters["p1"].Health == 100 && sess.Fighters["p2"].Health == 100 && sess.TurnCount == 0
	sess.Mu.Unlock()
	if !unchanged {
		t.Fatalf("rejected action mutated state")
	}
}

func TestSubmitAction_InsufficientEnergyLeavesStateUntouched(t *testing.T) {
	r, _, sess := spawnBattle(t)

	sess.Mu.Lock()
	sess.Fighters["p1"].Energy = 5
	sess.Mu.Unlock()

	if _, err := r.SubmitAction(sess.ID, "p1", game.ActionSpecial); err != ErrInsufficientEnergy {
		t.Fatalf("got %v, want ErrInsufficientEnergy", err)
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	if sess.CurrentTurn != "p1" {
		t.Fatalf("turn moved to %s on a rejected action", sess.CurrentTurn)
	}
	if sess.Fighters["p1"].Energy != 5 || sess.TurnCount != 0 {
		t.Fatalf("rejected action mutated state: energy=%d turns=%d", sess.Fighters["p1"].Energy, sess.TurnCount)
	}
}

func TestSubmitAction_UnknownActionRejected(t *testing.T) {
	r, _, sess := spawnBattle(t)
	// punch belongs to the AI table, not the room table.
	if _, err := r.SubmitAction(sess.ID, "p1", game.ActionPunch); err != ErrUnknownAction {
		t.Fatalf("got %v, want ErrUnknownAction", err)
	}
}

func TestSubmitAction_KnockoutFinishesSessionOnce(t *testing.T) {
	r, repo, sess := spawnBattle(t)
	roomID := sess.RoomID

	sess.Mu.Lock()
	sess.Fighters["p2"].Health = 10 // below the minimum attack damage
	sess.Mu.Unlock()

	snap, err := r.SubmitAction(sess.ID, "p1", game.ActionAttack)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Status != game.SessionFinished || snap.WinnerID != "p1" {
		t.Fatalf("status=%s winner=%s, want finished/p1", snap.Status, snap.WinnerID)
	}
	if snap.Fighters["p2"].Health != 0 {
		t.Fatalf("loser health %d, want clamp at 0", snap.Fighters["p2"].Health)
	}

	// A finished session accepts no more actions and is torn down.
	if _, err := r.SubmitAction(sess.ID, "p2", game.ActionAttack); err == nil {
		t.Fatalf("action on finished session should be rejected")
	}

	// Rewards for both humans, one record, room gone.
	if _, ok := repo.applied["p1"]; !ok {
		t.Fatalf("winner rewards not applied")
	}
	if _, ok := repo.applied["p2"]; !ok {
		t.Fatalf("loser rewards not applied")
	}
	if repo.applied["p1"].Experience < repo.applied["p2"].Experience {
		t.Fatalf("winner exp %d below loser exp %d", repo.applied["p1"].Experience, repo.applied["p2"].Experience)
	}
	if len(repo.records) != 1 {
		t.Fatalf("%d battle records, want 1", len(repo.records))
	}
	if repo.records[0].WinnerID != "p1" || repo.records[0].LoserID != "p2" {
		t.Fatalf("record %+v has wrong participants", repo.records[0])
	}
	r.mu.RLock()
	_, roomStill := r.roomsByID[roomID]
	r.mu.RUnlock()
	if roomStill {
		t.Fatalf("room should be deleted when the battle concludes")
	}
}

func TestSubmitAction_HealthAndEnergyBoundsHold(t *testing.T) {
	r, _, sess := spawnBattle(t)

	actors := [2]string{"p1", "p2"}
	for i := 0; i < 40; i++ {
		actor := actors[i%2]
		snap, err := r.SubmitAction(sess.ID, actor, game.ActionAttack)
		if err == ErrInsufficientEnergy {
			snap, err = r.SubmitAction(sess.ID, actor, game.ActionDefend)
		}
		if err == ErrSessionFinished || err == ErrSessionNotFound {
			return
		}
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		for id, f := range snap.Fighters {
			if f.Health < 0 || f.Health > f.MaxHealth || f.Energy < 0 || f.Energy > f.MaxEnergy {
				t.Fatalf("fighter %s out of bounds: health=%d energy=%d", id, f.Health, f.Energy)
			}
		}
		if snap.Status == game.SessionFinished {
			return
		}
	}
}

func TestTimeout_PassesTurnThenForfeits(t *testing.T) {
	r, _, sess := spawnBattle(t)

	sess.Mu.Lock()
	timeoutLockedTimes(r, sess, 1)
	if sess.CurrentTurn != "p2" {
		t.Fatalf("turn %s after timeout, want p2", sess.CurrentTurn)
	}
	if sess.Status != game.SessionFighting {
		t.Fatalf("one timeout must not finish the session")
	}
	// p1 keeps timing out on alternating turns: pass back, then two more
	// p1 expiries reach the forfeit streak.
	sess.CurrentTurn = "p1"
	timeoutLockedTimes(r, sess, 1)
	sess.CurrentTurn = "p1"
	timeoutLockedTimes(r, sess, 1)
	status, winner := sess.Status, sess.WinnerID
	sess.Mu.Unlock()

	if status != game.SessionFinished || winner != "p2" {
		t.Fatalf("status=%s winner=%s, want finished/p2 after forfeit", status, winner)
	}
}

func timeoutLockedTimes(r *Registry, sess *game.Session, n int) {
	for i := 0; i < n; i++ {
		r.timeoutLocked(sess)
	}
}
