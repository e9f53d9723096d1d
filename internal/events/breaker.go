package events

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

type BreakerConfig struct {
	// FailureThreshold is how many consecutive failures open the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 5, OpenTimeout: 30 * time.Second}
}

// GuardedPublisher stops calling a failing broker for a while so that request
// handlers do not pay a connection timeout on every event.
type GuardedPublisher struct {
	next    Publisher
	breaker *gobreaker.CircuitBreaker[any]
}

func NewGuardedPublisher(next Publisher, cfg BreakerConfig, logger zerolog.Logger) *GuardedPublisher {
	settings := gobreaker.Settings{
		Name:        "events",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}
	return &GuardedPublisher{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (g *GuardedPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	_, err := g.breaker.Execute(func() (any, error) {
		return nil, g.next.Publish(ctx, routingKey, payload)
	})
	return err
}

// State reports the breaker state.
func (g *GuardedPublisher) State() gobreaker.State {
	return g.breaker.State()
}

func (g *GuardedPublisher) Close() error {
	return g.next.Close()
}
