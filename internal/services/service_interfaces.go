package services

import (
	"context"
	"time"

	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/broker"

	"github.com/rs/zerolog"
)

// EventPublisher fans lifecycle events out to live subscribers.
type EventPublisher interface {
	Publish(topic string, msg broker.Event) int
}

func publishSubmissionEvent(ctx context.Context, p EventPublisher, eventType broker.EventType, s *models.Submission, at time.Time) {
	if p == nil || s == nil {
		return
	}
	n := p.Publish(broker.TopicSubmissions, broker.Event{
		Type:         eventType,
		SubmissionID: s.ID,
		Status:       string(s.Status),
		At:           at,
	})
	zerolog.Ctx(ctx).Debug().
		Str("event", string(eventType)).
		Str("submission_id", s.ID.String()).
		Int("subscribers", n).
		Msg("Published submission event")
}
