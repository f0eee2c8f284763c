package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// Subjects.
const (
	InquirySubjectPrefix    = "inquiries."
	MapSessionSubjectPrefix = "map.sessions."
)

// InquirySubject returns the subject an inquiry kind is published on.
func InquirySubject(kind domain.InquiryKind) string {
	return InquirySubjectPrefix + string(kind)
}

// MapSessionSubject returns the subject a map session's events are published on.
func MapSessionSubject(sessionID string) string {
	return MapSessionSubjectPrefix + sessionID
}

// Publisher implements ports.EventPublisher and ports.InquirySink using NATS.
// Inquiries go through JetStream; map events are fire-and-forget core NATS.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if err := ensureStreams(js); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

func ensureStreams(js nats.JetStreamContext) error {
	streams := []nats.StreamConfig{
		{
			Name:      "INQUIRIES",
			Subjects:  []string{InquirySubjectPrefix + ">"},
			Retention: nats.WorkQueuePolicy,
			MaxAge:    7 * 24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist, try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}
	return nil
}

// PublishInquiry publishes an inquiry to JetStream, deduplicated by its id.
func (p *Publisher) PublishInquiry(ctx context.Context, inq *domain.Inquiry) error {
	data, err := json.Marshal(inq)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(InquirySubject(inq.Kind), data, nats.MsgId(inq.ID), nats.Context(ctx))
	return err
}

// Submit implements ports.InquirySink.
func (p *Publisher) Submit(ctx context.Context, inq *domain.Inquiry) error {
	return p.PublishInquiry(ctx, inq)
}

// PublishMapEvent publishes a serialized map event for a session.
func (p *Publisher) PublishMapEvent(ctx context.Context, sessionID string, data []byte) error {
	return p.conn.Publish(MapSessionSubject(sessionID), data)
}

// Conn exposes the underlying connection for relays and health checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("crestfield"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
