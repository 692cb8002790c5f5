package game

import (
	"math/rand"
	"sync"
	"time"
)

type SessionStatus string

const (
	SessionFighting SessionStatus = "fighting"
	SessionFinished SessionStatus = "finished"
)

type SessionMode string

const (
	ModeRoom SessionMode = "room"
	ModeAI   SessionMode = "ai"
)

// Session is the live turn-based match spawned from a ready room (or
// directly for single-player AI battles). It exclusively owns its two
// Fighter records; the room keeps only the session id for cleanup.
type Session struct {
	Mu sync.Mutex `json:"-"`

	ID     string      `json:"id"`
	RoomID string      `json:"room_id,omitempty"`
	Mode   SessionMode `json:"mode"`

	Config   *CombatConfig       `json:"-"`
	Fighters map[string]*Fighter `json:"fighters"`
	// Order preserves host-first convention: Order[0] acts first.
	Order [2]string `json:"order"`

	CurrentTurn  string        `json:"current_turn"`
	TurnTimeLeft int           `json:"turn_time_left"`
	Status       SessionStatus `json:"status"`
	WinnerID     string        `json:"winner_id,omitempty"`
	CombatLog    []string      `json:"combat_log"`
	TurnCount    int           `json:"turn_count"`
	StartedAt    time.Time     `json:"started_at"`
	EndedAt      time.Time     `json:"ended_at,omitempty"`
	Wager        int           `json:"wager"`

	// Consecutive turn timeouts per fighter; a long enough streak
	// forfeits the match.
	TimeoutStreak map[string]int `json:"-"`

	// AI holds the opponent model for single-player sessions, nil otherwise.
	AI *AIOpponent `json:"ai,omitempty"`

	// Rng drives every random draw for this session. Each session owns
	// its source so seeding one battle makes it reproducible without a
	// process-wide lock.
	Rng *rand.Rand `json:"-"`
	// Done is closed exactly once when the session finishes; the turn
	// clock goroutine exits on it.
	Done chan struct{} `json:"-"`
	// ConcludeOnce guards post-battle side effects (rewards, records,
	// the battle.ended event) so they run exactly once.
	ConcludeOnce sync.Once `json:"-"`
}

// NewSession builds a fighting session with Order[0] acting first, both
// fighters at full health and energy.
func NewSession(id, roomID string, mode SessionMode, cfg *CombatConfig, first, second *Fighter, wager int, seed int64) *Session {
	return &Session{
		ID:     id,
		RoomID: roomID,
		Mode:   mode,
		Config: cfg,
		Fighters: map[string]*Fighter{
			first.ID:  first,
			second.ID: second,
		},
		Order:         [2]string{first.ID, second.ID},
		CurrentTurn:   first.ID,
		TurnTimeLeft:  cfg.TurnSeconds,
		Status:        SessionFighting,
		CombatLog:     make([]string, 0, 32),
		StartedAt:     time.Now(),
		Wager:         wager,
		TimeoutStreak: make(map[string]int, 2),
		Rng:           rand.New(rand.NewSource(seed)),
		Done:          make(chan struct{}),
	}
}

// Opponent returns the fighter that is not the given one.
// Caller must hold the session lock.
func (s *Session) Opponent(fighterID string) *Fighter {
	if s.Order[0] == fighterID {
		return s.Fighters[s.Order[1]]
	}
	return s.Fighters[s.Order[0]]
}

// Log appends a line to the combat log.
// Caller must hold the session lock.
func (s *Session) Log(line string) {
	s.CombatLog = append(s.CombatLog, line)
}

// Finish flips the session to finished exactly once; later calls no-op.
// Caller must hold the session lock.
func (s *Session) Finish(winnerID string) {
	if s.Status == SessionFinished {
		return
	}
	s.Status = SessionFinished
	s.WinnerID = winnerID
	s.EndedAt = time.Now()
	close(s.Done)
}

// Snapshot returns a deep copy safe to serialize while the live session
// keeps mutating. Caller must hold the session lock.
func (s *Session) Snapshot() *Session {
	cp := &Session{
		ID:           s.ID,
		RoomID:       s.RoomID,
		Mode:         s.Mode,
		Config:       s.Config,
		Fighters:     make(map[string]*Fighter, len(s.Fighters)),
		Order:        s.Order,
		CurrentTurn:  s.CurrentTurn,
		TurnTimeLeft: s.TurnTimeLeft,
		Status:       s.Status,
		WinnerID:     s.WinnerID,
		CombatLog:    append([]string(nil), s.CombatLog...),
		TurnCount:    s.TurnCount,
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		Wager:        s.Wager,
	}
	for id, f := range s.Fighters {
		fc := *f
		cp.Fighters[id] = &fc
	}
	if s.AI != nil {
		adapt := &AdaptationState{
			RecentPlayerActions: append([]Action(nil), s.AI.Adaptation.RecentPlayerActions...),
			ActionCounts:        make(map[Action]int, len(s.AI.Adaptation.ActionCounts)),
			LastAIAction:        s.AI.Adaptation.LastAIAction,
		}
		for a, n := range s.AI.Adaptation.ActionCounts {
			adapt.ActionCounts[a] = n
		}
		cp.AI = &AIOpponent{
			FighterID:   s.AI.FighterID,
			Personality: s.AI.Personality,
			Adaptation:  adapt,
		}
	}
	return cp
}
