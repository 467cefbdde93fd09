// Package events publishes pack and album activity for downstream consumers
// such as the album site and analytics.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	PackOpened      = "stickerbot.pack.opened"
	AlbumLinkIssued = "stickerbot.album.link_issued"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type PackOpenedEvent struct {
	UserID     int64     `json:"user_id"`
	Phone      string    `json:"phone"`
	StickerIDs []int64   `json:"sticker_ids"`
	FirstPack  bool      `json:"first_pack"`
	OpenedAt   time.Time `json:"opened_at"`
}

type AlbumLinkIssuedEvent struct {
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at"`
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("stickerbot"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	slog.DebugContext(ctx, "Publishing event",
		slog.String("type", "sys"),
		slog.String("subject", subject),
		slog.Int("bytes", len(payload)))

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	return n.conn.Drain()
}

// Nop drops every event. Used when no NATS URL is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, interface{}) error { return nil }
func (Nop) Close() error                                      { return nil }

type Recorded struct {
	Subject string
	Data    interface{}
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
	Err    error
}

func (r *Recorder) Publish(_ context.Context, subject string, data interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, Recorded{Subject: subject, Data: data})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Recorded(nil), r.events...)
}

// Connect returns a NATS publisher for url, or Nop when url is empty.
func Connect(url string) (Publisher, error) {
	if url == "" {
		return Nop{}, nil
	}
	return NewNATSPublisher(url)
}
