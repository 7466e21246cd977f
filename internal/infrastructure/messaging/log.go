package messaging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
)

// LogPublisher is used when no brokers are configured. It only logs.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.Event) error {
	p.log.Info().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Str("subject_id", event.SubjectID).
		Str("actor_id", event.ActorID).
		Interface("payload", event.Payload).
		Msg("domain event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
