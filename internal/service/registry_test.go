package service

import (
	"strings"
	"testing"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/rewards"

	"gorm.io/gorm"
)

type mockRepo struct {
	profiles map[string]*game.Profile
	applied  map[string]rewards.Reward
	records  []*game.BattleRecord
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		profiles: make(map[string]*game.Profile),
		applied:  make(map[string]rewards.Reward),
	}
}

func (m *mockRepo) GetProfile(userID string) (*game.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) UpsertProfile(userID, displayName, bodyTypeTag string) (*game.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	p := &game.Profile{
		UserID:      userID,
		DisplayName: displayName,
		BodyTypeTag: bodyTypeTag,
		Level:       5,
		Strength:    50,
		Endurance:   50,
	}
	m.profiles[userID] = p
	return p, nil
}

func (m *mockRepo) ApplyRewards(userID string, r rewards.Reward, won bool) error {
	m.applied[userID] = r
	return nil
}

func (m *mockRepo) RecordBattle(rec *game.BattleRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *mockRepo) GetTopPlayers(limit int) ([]game.Profile, error) { return nil, nil }

func (m *mockRepo) GetBattleHistory(userID string, limit int) ([]game.BattleRecord, error) {
	return nil, nil
}

func newTestRegistry() (*Registry, *mockRepo) {
	repo := newMockRepo()
	return NewRegistry(DefaultConfig(), repo, nil), repo
}

func TestCreateRoom_GeneratesSixCharCode(t *testing.T) {
	r, _ := newTestRegistry()
	room, err := r.CreateRoom("p1", "P1", "lean", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(room.Code) != 6 {
		t.Fatalf("code %q length %d, want 6", room.Code, len(room.Code))
	}
	if room.Status != game.RoomStatusWaiting {
		t.Fatalf("new room status %s, want waiting", room.Status)
	}
	if len(room.Players) != 1 || room.Players[0].ID != "p1" {
		t.Fatalf("owner not recorded: %+v", room.Players)
	}
}

func TestCreateRoom_RejectsNegativeWager(t *testing.T) {
	r, _ := newTestRegistry()
	if _, err := r.CreateRoom("p1", "P1", "", -1); err != ErrInvalidWager {
		t.Fatalf("got %v, want ErrInvalidWager", err)
	}
}

func TestCreateRoom_CodesUniqueAmongActiveRooms(t *testing.T) {
	r, _ := newTestRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room, err := r.CreateRoom("p1", "P1", "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[room.Code] {
			t.Fatalf("duplicate active code %s", room.Code)
		}
		seen[room.Code] = true
	}
}

func TestJoinRoom_FullFlow(t *testing.T) {
	r, _ := newTestRegistry()
	room, _ := r.CreateRoom("p1", "P1", "", 100)

	joined, err := r.JoinRoom(strings.ToLower(room.Code), "p2", "P2", "")
	if err != nil {
		t.Fatalf("case-insensitive join failed: %v", err)
	}
	if joined.Status != game.RoomStatusReady {
		t.Fatalf("room with two players has status %s, want ready", joined.Status)
	}

	if _, err := r.JoinRoom(room.Code, "p2", "P2", ""); err != ErrAlreadyJoined {
		t.Fatalf("rejoin got %v, want ErrAlreadyJoined", err)
	}
	if _, err := r.JoinRoom(room.Code, "p3", "P3", ""); err != ErrRoomFull {
		t.Fatalf("third join got %v, want ErrRoomFull", err)
	}
	if _, err := r.JoinRoom("ZZZZZZ", "p3", "P3", ""); err != ErrRoomNotFound {
		t.Fatalf("unknown code got %v, want ErrRoomNotFound", err)
	}
}

func TestLeaveRoom_RevertsToWaitingThenDeletes(t *testing.T) {
	r, _ := newTestRegistry()
	room, _ := r.CreateRoom("p1", "P1", "", 0)
	r.JoinRoom(room.Code, "p2", "P2", "")

	if err := r.LeaveRoom(room.ID, "p2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.RoomByCode(room.Code)
	if err != nil {
		t.Fatalf("room should still exist: %v", err)
	}
	if got.Status != game.RoomStatusWaiting || len(got.Players) != 1 {
		t.Fatalf("room after leave: status=%s players=%d", got.Status, len(got.Players))
	}

	if err := r.LeaveRoom(room.ID, "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.RoomByCode(room.Code); err != ErrRoomNotFound {
		t.Fatalf("emptied room should be gone, got %v", err)
	}
	// Deleting again is a no-op, not an error.
	if err := r.LeaveRoom(room.ID, "p1"); err != nil {
		t.Fatalf("repeated leave should no-op, got %v", err)
	}
}

func TestMarkReady_SpawnsSessionHostFirst(t *testing.T) {
	r, _ := newTestRegistry()
	room, _ := r.CreateRoom("p1", "P1", "", 100)
	r.JoinRoom(room.Code, "p2", "P2", "")

	sess, err := r.MarkReady(room.ID, "p1")
	if err != nil || sess != nil {
		t.Fatalf("single ready should no-op, got sess=%v err=%v", sess, err)
	}
	sess, err = r.MarkReady(room.ID, "p2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess == nil {
		t.Fatalf("both ready should spawn a session")
	}
	if sess.CurrentTurn != "p1" {
		t.Fatalf("current turn %s, want host p1", sess.CurrentTurn)
	}
	for id, f := range sess.Fighters {
		if f.Health != 100 || f.Energy != 100 {
			t.Fatalf("fighter %s starts at %d/%d, want 100/100", id, f.Health, f.Energy)
		}
	}
	if sess.Wager != 100 {
		t.Fatalf("session wager %d, want 100", sess.Wager)
	}

	got, _ := r.RoomByCode(room.Code)
	if got.Status != game.RoomStatusFighting {
		t.Fatalf("room status %s, want fighting", got.Status)
	}
}

func TestMarkReady_UnknownPlayer(t *testing.T) {
	r, _ := newTestRegistry()
	room, _ := r.CreateRoom("p1", "P1", "", 0)
	if _, err := r.MarkReady(room.ID, "stranger"); err != ErrPlayerNotInRoom {
		t.Fatalf("got %v, want ErrPlayerNotInRoom", err)
	}
}

func TestSweep_DeletesOnlyEmptyRooms(t *testing.T) {
	r, _ := newTestRegistry()
	occupied, _ := r.CreateRoom("p1", "P1", "", 0)
	abandoned, _ := r.CreateRoom("p2", "P2", "", 0)

	// Simulate a room abandoned without a leave call (e.g. process-side
	// disconnect cleanup emptied it directly).
	r.mu.RLock()
	live := r.roomsByID[abandoned.ID]
	r.mu.RUnlock()
	live.Mu.Lock()
	live.Players = nil
	live.Mu.Unlock()

	r.sweepOnce()
	r.sweepOnce() // idempotent

	if _, err := r.RoomByCode(occupied.Code); err != nil {
		t.Fatalf("occupied room swept: %v", err)
	}
	if _, err := r.RoomByCode(abandoned.Code); err != ErrRoomNotFound {
		t.Fatalf("empty room should be swept, got %v", err)
	}
}
