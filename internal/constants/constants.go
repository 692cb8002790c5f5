package constants

// Centralized constants for env keys, routes, JSON keys and log fields.
const (
	// Environment variable keys
	EnvConfigPath = "IMFIIT_CONFIG"
	EnvDBPath     = "IMFIIT_DB"

	// JSON response keys
	JSONKeyError = "error"

	// Log field names
	LogFieldAddr      = "addr"
	LogFieldRoomID    = "room_id"
	LogFieldRoomCode  = "room_code"
	LogFieldSessionID = "session_id"
	LogFieldPlayerID  = "player_id"
	LogFieldUserID    = "user_id"
	LogFieldWinnerID  = "winner_id"
	LogFieldChannel   = "channel"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteRooms          = "/rooms"
	RouteRoomsJoin      = "/rooms/join"
	RouteRoomByCode     = "/rooms/:roomCode"
	RouteRoomLeave      = "/rooms/:roomCode/leave"
	RouteRoomReady      = "/rooms/:roomCode/ready"
	RouteBattleByID     = "/battles/:sessionId"
	RouteBattleAction   = "/battles/:sessionId/action"
	RouteAIBattles      = "/ai-battles"
	RouteAIBattleAction = "/ai-battles/:sessionId/action"
	RoutePlayerStats    = "/players/:userId/stats"
	RouteBattleHistory  = "/players/:userId/battles"
	RouteLeaderboard    = "/leaderboard"
	RouteWebSocket      = "/ws"
	RouteVersion        = "/version"
)

// API error strings returned to clients
const (
	ErrInvalidRequest      = "Invalid request payload"
	ErrInvalidRoomCode     = "Invalid room code"
	ErrRoomNotFound        = "Room not found"
	ErrRoomFull            = "Room is full"
	ErrAlreadyJoined       = "Player already joined this room"
	ErrInvalidWager        = "Wager must not be negative"
	ErrPlayerNotInRoom     = "Player is not in this room"
	ErrSessionNotFound     = "Battle session not found"
	ErrSessionFinished     = "Battle session already finished"
	ErrNotYourTurn         = "It is not this fighter's turn"
	ErrInsufficientEnergy  = "Not enough energy for this action"
	ErrSpecialLocked       = "Special requires strength and endurance of 40"
	ErrUnknownAction       = "Unknown action for this battle mode"
	ErrProfileNotFound     = "Player profile not found"
	ErrFailedCreateRoom    = "Failed to create room"
	ErrFailedLoadProfile   = "Failed to load player profile"
	ErrFailedListPlayers   = "Failed to list top players"
	ErrWebSocketChannel    = "Missing channel query parameter"
	ErrFailedUpgradeSocket = "Failed to upgrade connection"
)
