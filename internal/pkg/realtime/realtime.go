package realtime

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ticketar/ticketar/internal/pkg/cache"
)

// Event names consumed by the dashboard gateway.
const (
	EventParkingUpdate = "parking-update"
	EventTicketCreated = "ticket-created"
	EventTicketExited  = "ticket-exited"
)

const channelPrefix = "realtime:"

// Publisher is the notification hook used by the ticket engine. Publishing is
// best-effort: implementations must never block the caller or surface
// delivery errors to it.
type Publisher interface {
	Publish(event string, payload interface{})
}

type envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// RedisPublisher fans events out over Redis pub/sub channels.
type RedisPublisher struct{}

func NewRedisPublisher() *RedisPublisher {
	return &RedisPublisher{}
}

// Publish serializes the event and ships it from a goroutine. Failures are
// logged and dropped so a broken bus cannot fail an entry or exit request.
func (p *RedisPublisher) Publish(event string, payload interface{}) {
	go func() {
		msg, err := json.Marshal(envelope{Event: event, Payload: payload, At: time.Now().UTC()})
		if err != nil {
			log.Errorf("[Realtime] marshal %s event failed: %v", event, err)
			return
		}
		if err := cache.Publish(ChannelFor(event), msg); err != nil {
			log.Errorf("[Realtime] publish %s failed: %v", event, err)
		}
	}()
}

// ChannelFor maps an event name to its pub/sub channel.
func ChannelFor(event string) string {
	return channelPrefix + event
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) Publish(string, interface{}) {}
