package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Routing keys published on the events exchange.
const (
	DailyLogReported = "daily_log.reported"
	TaskCompleted    = "task.completed"
	MessageSent      = "message.sent"
)

// DefaultExchange is the topic exchange every event is published to.
const DefaultExchange = "rebound.events"

// Publisher delivers an encoded event under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

type DailyLogReportedEvent struct {
	StudentID      string    `json:"studentId"`
	StressLevel    int       `json:"stressLevel"`
	AvailableHours float64   `json:"availableHours"`
	Strategy       string    `json:"strategy"`
	Recommended    int       `json:"recommended"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type TaskCompletedEvent struct {
	StudentID  string    `json:"studentId"`
	TaskID     string    `json:"taskId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type MessageSentEvent struct {
	FromID     string    `json:"fromId"`
	ToID       string    `json:"toId"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Bus encodes events as JSON and hands them to a Publisher. Delivery is best
// effort: failures are logged and never returned to the caller.
type Bus struct {
	pub    Publisher
	logger zerolog.Logger
}

func NewBus(pub Publisher, logger zerolog.Logger) *Bus {
	return &Bus{pub: pub, logger: logger}
}

func (b *Bus) Emit(ctx context.Context, routingKey string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.Error().Err(err).Str("routing_key", routingKey).Msg("encoding event")
		return
	}
	if err := b.pub.Publish(ctx, routingKey, payload); err != nil {
		b.logger.Warn().Err(err).Str("routing_key", routingKey).Msg("event dropped")
	}
}

func (b *Bus) Close() error {
	return b.pub.Close()
}
