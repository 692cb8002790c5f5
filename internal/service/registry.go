package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/constants"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/logging"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/storage"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Config tunes the registry's clocks and timeout policy.
type Config struct {
	RoomTurnTime     time.Duration
	AITurnTime       time.Duration
	SweepInterval    time.Duration
	MaxTimeoutStreak int
}

// DefaultConfig mirrors the production numbers: 30s room turns, 10s AI
// turns, a 30s sweep and forfeiture after three missed turns in a row.
func DefaultConfig() Config {
	return Config{
		RoomTurnTime:     30 * time.Second,
		AITurnTime:       10 * time.Second,
		SweepInterval:    30 * time.Second,
		MaxTimeoutStreak: 3,
	}
}

const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// Registry owns every active room and battle session. It is the only
// holder of the lookup maps; rooms and sessions are mutated under their
// own locks so unrelated battles never contend.
type Registry struct {
	mu          sync.RWMutex
	roomsByID   map[string]*game.Room
	roomsByCode map[string]*game.Room
	sessions    map[string]*game.Session

	cfg  Config
	repo storage.Repository
	pub  EventPublisher

	// seedMu guards the seed source used to derive per-session seeds.
	seedMu sync.Mutex
	seeds  *rand.Rand
}

func NewRegistry(cfg Config, repo storage.Repository, pub EventPublisher) *Registry {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Registry{
		roomsByID:   make(map[string]*game.Room),
		roomsByCode: make(map[string]*game.Room),
		sessions:    make(map[string]*game.Session),
		cfg:         cfg,
		repo:        repo,
		pub:         pub,
		seeds:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *Registry) nextSeed() int64 {
	r.seedMu.Lock()
	defer r.seedMu.Unlock()
	return r.seeds.Int63()
}

// NormalizeCode canonicalizes a join code for case-insensitive matching.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateRoom opens a new lobby owned by the given player and returns it.
// The generated six character code is unique among active rooms; a
// collision causes a regeneration, never an error.
func (r *Registry) CreateRoom(ownerID, displayName, bodyTypeTag string, wager int) (*game.Room, error) {
	if wager < 0 {
		return nil, ErrInvalidWager
	}

	room := &game.Room{
		ID: uuid.NewString(),
		Players: []game.RoomPlayer{
			{ID: ownerID, DisplayName: displayName, BodyTypeTag: bodyTypeTag},
		},
		Status:    game.RoomStatusWaiting,
		Wager:     wager,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	for {
		code, err := gonanoid.Generate(codeAlphabet, codeLength)
		if err != nil {
			r.mu.Unlock()
			return nil, err
		}
		if _, taken := r.roomsByCode[code]; taken {
			continue
		}
		room.Code = code
		break
	}
	r.roomsByID[room.ID] = room
	r.roomsByCode[room.Code] = room
	r.mu.Unlock()

	logging.Info("room created", logging.Fields{
		constants.LogFieldRoomID:   room.ID,
		constants.LogFieldRoomCode: room.Code,
		constants.LogFieldPlayerID: ownerID,
	})
	return room.Snapshot(), nil
}

// JoinRoom adds a player to the room with the given code. Reaching two
// occupants moves the room to ready.
func (r *Registry) JoinRoom(code, playerID, displayName, bodyTypeTag string) (*game.Room, error) {
	room, err := r.roomByCode(code)
	if err != nil {
		return nil, err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if room.Closed {
		return nil, ErrRoomNotFound
	}
	if room.HasPlayer(playerID) {
		return nil, ErrAlreadyJoined
	}
	if len(room.Players) >= game.MaxRoomPlayers {
		return nil, ErrRoomFull
	}
	room.Players = append(room.Players, game.RoomPlayer{
		ID: playerID, DisplayName: displayName, BodyTypeTag: bodyTypeTag,
	})
	if len(room.Players) == game.MaxRoomPlayers {
		room.Status = game.RoomStatusReady
	}
	snap := room.Snapshot()

	r.pub.Publish(RoomChannel(room.Code), EventPlayerJoined, snap)
	return snap, nil
}

// LeaveRoom removes a player. An emptied room is deleted; otherwise the
// room reverts to waiting and readiness flags are cleared.
func (r *Registry) LeaveRoom(roomID, playerID string) error {
	r.mu.RLock()
	room, ok := r.roomsByID[roomID]
	r.mu.RUnlock()
	if !ok {
		// Deletion is idempotent: leaving a gone room is a no-op.
		return nil
	}

	room.Mu.Lock()
	if room.Closed {
		room.Mu.Unlock()
		return nil
	}
	found := false
	kept := room.Players[:0]
	for _, p := range room.Players {
		if p.ID == playerID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		room.Mu.Unlock()
		return ErrPlayerNotInRoom
	}
	room.Players = kept
	empty := len(room.Players) == 0
	if empty {
		room.Closed = true
	} else {
		room.Status = game.RoomStatusWaiting
		for i := range room.Players {
			room.Players[i].Ready = false
		}
	}
	code := room.Code
	snap := room.Snapshot()
	room.Mu.Unlock()

	if empty {
		r.removeRoom(roomID, code)
	} else {
		r.pub.Publish(RoomChannel(code), EventPlayerLeft, snap)
	}
	return nil
}

// MarkReady records a ready signal. Once both occupants of a full room
// are ready the room flips to fighting and a battle session is spawned
// with the room creator acting first. Returns nil without error when the
// room is not yet ready to fight.
func (r *Registry) MarkReady(roomID, playerID string) (*game.Session, error) {
	r.mu.RLock()
	room, ok := r.roomsByID[roomID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if room.Closed {
		return nil, ErrRoomNotFound
	}
	idx := -1
	for i := range room.Players {
		if room.Players[i].ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrPlayerNotInRoom
	}
	room.Players[idx].Ready = true

	if room.Status != game.RoomStatusReady || !room.AllReady() {
		return nil, nil
	}

	sess, err := r.spawnSession(room)
	if err != nil {
		return nil, err
	}
	room.Status = game.RoomStatusFighting
	room.SessionID = sess.ID

	r.pub.Publish(RoomChannel(room.Code), EventRoomReady, room.Snapshot())

	sess.Mu.Lock()
	snap := sess.Snapshot()
	sess.Mu.Unlock()
	r.pub.Publish(BattleChannel(sess.ID), EventBattleStart, snap)
	return snap, nil
}

// spawnSession builds the fighters from stored profiles and registers a
// running session. Caller must hold the room lock.
func (r *Registry) spawnSession(room *game.Room) (*game.Session, error) {
	fighters := make([]*game.Fighter, 0, game.MaxRoomPlayers)
	for _, p := range room.Players {
		profile, err := r.repo.UpsertProfile(p.ID, p.DisplayName, p.BodyTypeTag)
		if err != nil {
			return nil, err
		}
		fighters = append(fighters, game.NewFighter(p.ID, profile.DisplayName, profile.BodyTypeTag, game.BaseStats{
			Strength:  profile.Strength,
			Endurance: profile.Endurance,
			Level:     profile.Level,
		}))
	}

	cfg := *game.RoomCombat
	cfg.TurnSeconds = int(r.cfg.RoomTurnTime / time.Second)
	sess := game.NewSession(uuid.NewString(), room.ID, game.ModeRoom, &cfg, fighters[0], fighters[1], room.Wager, r.nextSeed())

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	go r.runTurnClock(sess)

	logging.Info("battle session started", logging.Fields{
		constants.LogFieldSessionID: sess.ID,
		constants.LogFieldRoomID:    room.ID,
	})
	return sess, nil
}

// RoomByCode returns a snapshot of the active room with the given code.
func (r *Registry) RoomByCode(code string) (*game.Room, error) {
	room, err := r.roomByCode(code)
	if err != nil {
		return nil, err
	}
	room.Mu.Lock()
	defer room.Mu.Unlock()
	if room.Closed {
		return nil, ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

func (r *Registry) roomByCode(code string) (*game.Room, error) {
	r.mu.RLock()
	room, ok := r.roomsByCode[NormalizeCode(code)]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// removeRoom deletes a room from both lookup maps. Safe to call twice.
func (r *Registry) removeRoom(roomID, code string) {
	r.mu.Lock()
	delete(r.roomsByID, roomID)
	delete(r.roomsByCode, code)
	r.mu.Unlock()
}

// StartSweeper runs the periodic garbage collection of empty rooms until
// the context is cancelled. The sweep only deletes rooms observed empty
// under their own lock, so it is safe alongside concurrent joins.
func (r *Registry) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweepOnce()
			}
		}
	}()
}

func (r *Registry) sweepOnce() {
	r.mu.RLock()
	rooms := make([]*game.Room, 0, len(r.roomsByID))
	for _, room := range r.roomsByID {
		rooms = append(rooms, room)
	}
	r.mu.RUnlock()

	for _, room := range rooms {
		room.Mu.Lock()
		empty := !room.Closed && len(room.Players) == 0
		if empty {
			room.Closed = true
		}
		id, code := room.ID, room.Code
		room.Mu.Unlock()
		if empty {
			r.removeRoom(id, code)
			logging.Info("swept empty room", logging.Fields{constants.LogFieldRoomID: id})
		}
	}
}
