package service

import "errors"

// Typed errors reported to callers. Lookup and protocol failures are
// never retried here; re-entering a code or re-submitting an action is a
// client decision.
var (
	ErrInvalidWager       = errors.New("wager must not be negative")
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrAlreadyJoined      = errors.New("player already joined this room")
	ErrPlayerNotInRoom    = errors.New("player not in room")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionFinished    = errors.New("session already finished")
	ErrNotYourTurn        = errors.New("not this fighter's turn")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrSpecialLocked      = errors.New("special locked by stat requirements")
	ErrUnknownAction      = errors.New("unknown action for this battle mode")
)
