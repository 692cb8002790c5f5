package service

// EventPublisher is the realtime fan-out used to notify clients about
// room and battle changes. The registry publishes; subscribers live on
// the gateway side.
type EventPublisher interface {
	Publish(channel, event string, payload interface{})
}

// Event names carried on room and battle channels.
const (
	EventPlayerJoined = "room.player_joined"
	EventPlayerLeft   = "room.player_left"
	EventRoomReady    = "room.ready"
	EventBattleStart  = "battle.start"
	EventBattleUpdate = "battle.update"
	EventBattleTimer  = "battle.timer"
	EventBattleEnded  = "battle.ended"
)

// RoomChannel and BattleChannel name the pub/sub channels clients
// subscribe to.
func RoomChannel(code string) string        { return "room:" + code }
func BattleChannel(sessionID string) string { return "battle:" + sessionID }

// NopPublisher drops every event; used in tests and single-process
// setups without connected spectators.
type NopPublisher struct{}

func (NopPublisher) Publish(channel, event string, payload interface{}) {}
