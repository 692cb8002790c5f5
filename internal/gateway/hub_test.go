package gateway

import (
	"encoding/json"
	"sync"
	"testing"
)

// testClient registers a subscriber without a network connection so the
// hub's bookkeeping and delivery paths can be driven directly.
func testClient(h *Hub, channel string, buffer int) *Client {
	c := &Client{hub: h, channel: channel, send: make(chan []byte, buffer)}
	h.subscribe(c)
	return c
}

func TestPublishDeliversToChannelSubscribersOnly(t *testing.T) {
	h := NewHub()
	a := testClient(h, "battle:s1", sendBufferSize)
	b := testClient(h, "battle:s1", sendBufferSize)
	other := testClient(h, "room:ABC234", sendBufferSize)

	h.Publish("battle:s1", "battle.update", map[string]int{"turn_count": 3})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.send:
			var env Envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				t.Fatalf("bad envelope: %v", err)
			}
			if env.Channel != "battle:s1" || env.Event != "battle.update" {
				t.Fatalf("envelope %s/%s, want battle:s1/battle.update", env.Channel, env.Event)
			}
			if env.Ts.IsZero() {
				t.Fatalf("envelope timestamp not set")
			}
		default:
			t.Fatalf("subscriber received nothing")
		}
	}
	if len(other.send) != 0 {
		t.Fatalf("event leaked to another channel")
	}
}

func TestPublishEvictsSlowSubscriber(t *testing.T) {
	h := NewHub()
	c := testClient(h, "battle:s1", 1)

	h.Publish("battle:s1", "battle.timer", nil)
	h.Publish("battle:s1", "battle.timer", nil) // buffer full: dropped

	if got := h.SubscriberCount("battle:s1"); got != 0 {
		t.Fatalf("slow subscriber still registered, count %d", got)
	}
	// The buffered message survives, then the channel reports closed.
	<-c.send
	if _, ok := <-c.send; ok {
		t.Fatalf("send channel should be closed after eviction")
	}
}

func TestPublishToClosedClientCleansUpSubscription(t *testing.T) {
	h := NewHub()
	c := testClient(h, "battle:s1", sendBufferSize)

	// Disconnect path: the client closes before it is unsubscribed.
	c.close()
	h.Publish("battle:s1", "battle.update", nil)

	if got := h.SubscriberCount("battle:s1"); got != 0 {
		t.Fatalf("closed subscriber still registered, count %d", got)
	}
}

func TestClientCloseIsIdempotent(t *testing.T) {
	h := NewHub()
	c := testClient(h, "battle:s1", 1)
	c.close()
	c.close()
	if c.trySend([]byte("x")) {
		t.Fatalf("send to a closed client must be refused")
	}
}

func TestUnsubscribeUnknownClientIsNoOp(t *testing.T) {
	h := NewHub()
	known := testClient(h, "battle:s1", 1)
	stranger := &Client{hub: h, channel: "battle:s1", send: make(chan []byte, 1)}

	h.unsubscribe(stranger)
	if got := h.SubscriberCount("battle:s1"); got != 1 {
		t.Fatalf("count %d after unrelated unsubscribe, want 1", got)
	}
	h.unsubscribe(known)
	h.unsubscribe(known)
	if got := h.SubscriberCount("battle:s1"); got != 0 {
		t.Fatalf("count %d after unsubscribe, want 0", got)
	}
}

// Publishers racing client disconnects must never panic: a disconnect
// can close the send channel between a publisher's subscriber snapshot
// and its delivery attempt.
func TestConcurrentPublishAndDisconnect(t *testing.T) {
	h := NewHub()
	for i := 0; i < 200; i++ {
		c := testClient(h, "battle:race", 1)

		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				h.Publish("battle:race", "battle.timer", j)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				h.Publish("battle:race", "battle.update", j)
			}
		}()
		go func() {
			defer wg.Done()
			// Disconnect cleanup order as the read loop runs it.
			h.unsubscribe(c)
			c.close()
		}()
		wg.Wait()

		if got := h.SubscriberCount("battle:race"); got != 0 {
			t.Fatalf("iteration %d: count %d after disconnect, want 0", i, got)
		}
	}
}
