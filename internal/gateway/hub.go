// Package gateway is the realtime fan-out layer: clients subscribe to a
// room or battle channel over a websocket and receive every event the
// battle core publishes there. The hub never feeds data back into the
// core; actions always arrive over the HTTP API.
package gateway

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/constants"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/logging"
)

// Envelope is the wire format for one published event.
type Envelope struct {
	Channel string      `json:"channel"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	Ts      time.Time   `json:"ts"`
}

// Hub tracks subscribers per channel and broadcasts published events.
// It implements service.EventPublisher.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[*Client]struct{})}
}

// Publish serializes the event and queues it to every subscriber of the
// channel. Slow subscribers are dropped rather than blocking the core.
func (h *Hub) Publish(channel, event string, payload interface{}) {
	env := Envelope{Channel: channel, Event: event, Payload: payload, Ts: time.Now().UTC()}
	b, err := json.Marshal(env)
	if err != nil {
		logging.Error("failed to marshal event", err, logging.Fields{constants.LogFieldChannel: channel})
		return
	}

	h.mu.RLock()
	subs := make([]*Client, 0, len(h.channels[channel]))
	for c := range h.channels[channel] {
		subs = append(subs, c)
	}
	h.mu.RUnlock()

	for _, c := range subs {
		if c.trySend(b) {
			continue
		}
		// Already gone, or the send buffer is full and the client is
		// not keeping up.
		h.unsubscribe(c)
		c.close()
		logging.Warn("dropping websocket subscriber", logging.Fields{constants.LogFieldChannel: channel})
	}
}

func (h *Hub) subscribe(c *Client) {
	h.mu.Lock()
	set, ok := h.channels[c.channel]
	if !ok {
		set = make(map[*Client]struct{})
		h.channels[c.channel] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unsubscribe(c *Client) {
	h.mu.Lock()
	if set, ok := h.channels[c.channel]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.channels, c.channel)
		}
	}
	h.mu.Unlock()
}

// SubscriberCount reports the current number of clients on a channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}
