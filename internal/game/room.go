package game

import (
	"sync"
	"time"
)

type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"
	RoomStatusReady    RoomStatus = "ready"
	RoomStatusFighting RoomStatus = "fighting"
)

const MaxRoomPlayers = 2

// RoomPlayer is one occupant of a pre-battle lobby.
type RoomPlayer struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	BodyTypeTag string `json:"body_type_tag"`
	Ready       bool   `json:"ready"`
}

// Room is a pre-battle lobby identified by a short shareable code. The
// registry owns the occupancy list; all mutation happens under the
// room's own mutex so unrelated rooms never contend.
type Room struct {
	Mu sync.Mutex `json:"-"`

	ID      string       `json:"id"`
	Code    string       `json:"code"`
	Players []RoomPlayer `json:"players"`
	Status  RoomStatus   `json:"status"`
	// Wager is advisory only; settlement happens outside this server.
	Wager     int       `json:"wager"`
	SessionID string    `json:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	// Closed marks a room removed from the registry; late joiners that
	// still hold a pointer must treat it as gone.
	Closed bool `json:"-"`
}

// Snapshot returns a copy safe to serialize while the live room keeps
// mutating. Caller must hold the room lock.
func (r *Room) Snapshot() *Room {
	return &Room{
		ID:        r.ID,
		Code:      r.Code,
		Players:   append([]RoomPlayer(nil), r.Players...),
		Status:    r.Status,
		Wager:     r.Wager,
		SessionID: r.SessionID,
		CreatedAt: r.CreatedAt,
	}
}

// HasPlayer reports whether the given player occupies the room.
// Caller must hold the room lock.
func (r *Room) HasPlayer(playerID string) bool {
	for i := range r.Players {
		if r.Players[i].ID == playerID {
			return true
		}
	}
	return false
}

// AllReady reports whether the room is full and every occupant has
// signaled readiness. Caller must hold the room lock.
func (r *Room) AllReady() bool {
	if len(r.Players) < MaxRoomPlayers {
		return false
	}
	for i := range r.Players {
		if !r.Players[i].Ready {
			return false
		}
	}
	return true
}
