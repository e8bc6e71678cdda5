// Package events provides a fire-and-forget NATS JetStream publisher for
// engagement events. Consumers (the statistics reconciler, notification
// fan-out) treat every event as a hint, never as the source of truth.
package events

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subject constants for every engagement event type.
const (
	SubjectRatingSubmitted = "engagement.rating.submitted"
	SubjectRatingDeleted   = "engagement.rating.deleted"
	SubjectLikeToggled     = "engagement.like.toggled"
	SubjectCommentCreated  = "engagement.comment.created"
	SubjectCommentDeleted  = "engagement.comment.deleted"
)

const streamName = "ENGAGEMENT_EVENTS"

// Event is the canonical envelope sent to all engagement.* subjects.
type Event struct {
	EventID    string         `json:"event_id"`
	EventName  string         `json:"event_name"`
	UserID     string         `json:"user_id,omitempty"`
	ResourceID string         `json:"resource_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Publisher publishes engagement events to NATS JetStream.
// The zero value and a nil pointer are both safe no-op stubs.
type Publisher struct {
	js  nats.JetStreamContext
	log *zap.Logger
}

// New creates a Publisher using an existing JetStream context.
// Pass js=nil to get a no-op stub (useful in tests and deployments without NATS).
func New(js nats.JetStreamContext, log *zap.Logger) *Publisher {
	return &Publisher{js: js, log: log}
}

// EnsureStream creates or widens the engagement event stream.
func (p *Publisher) EnsureStream() error {
	if p == nil || p.js == nil {
		return nil
	}
	info, err := p.js.StreamInfo(streamName)
	if err == nil {
		for _, s := range info.Config.Subjects {
			if s == "engagement.>" {
				return nil
			}
		}
		cfg := info.Config
		cfg.Subjects = []string{"engagement.>"}
		_, err := p.js.UpdateStream(&cfg)
		return err
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return err
	}
	_, err = p.js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{"engagement.>"},
		Storage:  nats.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	})
	return err
}

// Publish sends an engagement event asynchronously (fire-and-forget).
// Failures are logged as warnings and never surface to the caller; the
// durable store already holds the authoritative state.
func (p *Publisher) Publish(subject, eventName, userID, resourceID string, props map[string]any) {
	if p == nil || p.js == nil {
		return
	}
	ev := Event{
		EventID:    uuid.NewString(),
		EventName:  eventName,
		UserID:     userID,
		ResourceID: resourceID,
		OccurredAt: time.Now().UTC(),
		Properties: props,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("events: marshal failed", zap.String("event", eventName), zap.Error(err))
		return
	}
	if _, err := p.js.PublishAsync(subject, data); err != nil {
		p.log.Warn("events: publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
