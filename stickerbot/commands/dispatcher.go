package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/economy"
	"github.com/silenole/stickerbot/stickerbot/economy/users"
	"github.com/silenole/stickerbot/stickerbot/handlers"
)

//go:generate mockgen -destination=mock/mock.go -package=mock . Economy,Notifier

type Economy interface {
	OpenPack(ctx context.Context, phone string) (*economy.PackResult, error)
	ViewAlbum(ctx context.Context, phone string) (*economy.AlbumResult, error)
}

// Notifier delivers a reply to the sender.
type Notifier interface {
	SendText(ctx context.Context, to, body string) error
}

// Message is an inbound chat text.
type Message struct {
	ID   string
	From string
	Text string
}

type Dispatcher struct {
	wakeWord string
	table    Table
	economy  Economy
	notifier Notifier
	timeout  time.Duration
	cooldown time.Duration
	linkTTL  time.Duration

	handlers map[string]handlers.CommandHandler
	failures map[string]string
}

type Option func(*Dispatcher)

func WithWakeWord(w string) Option {
	return func(d *Dispatcher) {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			d.wakeWord = w
		}
	}
}

func WithTable(t Table) Option {
	return func(d *Dispatcher) {
		if len(t) > 0 {
			d.table = t
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithDurations sets the pack cooldown and album link lifetime quoted in replies.
func WithDurations(cooldown, linkTTL time.Duration) Option {
	return func(d *Dispatcher) {
		if cooldown > 0 {
			d.cooldown = cooldown
		}
		if linkTTL > 0 {
			d.linkTTL = linkTTL
		}
	}
}

func NewDispatcher(econ Economy, notifier Notifier, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		wakeWord: config.DefaultWakeWord,
		table:    DefaultTable(),
		economy:  econ,
		notifier: notifier,
		timeout:  config.CommandExecutionTimeout,
		cooldown: config.PackCooldown,
		linkTTL:  config.AccessTokenTTL,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.table = append(Table(nil), d.table...)
	for i := range d.table {
		d.table[i].Keyword = strings.ToLower(strings.TrimSpace(d.table[i].Keyword))
	}

	d.handlers = map[string]handlers.CommandHandler{
		config.CommandHelp:      handlers.WrapWithLogging(config.CommandHelp, d.timeout, d.help),
		config.CommandOpenPack:  handlers.WrapWithLogging(config.CommandOpenPack, d.timeout, d.openPack),
		config.CommandViewAlbum: handlers.WrapWithLogging(config.CommandViewAlbum, d.timeout, d.viewAlbum),
	}
	d.failures = map[string]string{
		config.CommandOpenPack:  msgPackFailure,
		config.CommandViewAlbum: msgAlbumFailure,
	}

	for _, c := range d.table {
		if _, ok := d.handlers[c.Name]; !ok {
			return nil, fmt.Errorf("no handler for command %q", c.Name)
		}
	}
	return d, nil
}

// Handle processes one inbound message and sends at most one reply. It
// reports whether the message carried the wake word. Failures are logged
// and turned into user-facing text, never returned.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) bool {
	text := strings.ToLower(strings.TrimSpace(msg.Text))
	if !strings.Contains(text, d.wakeWord) {
		slog.Debug("Message without wake word ignored",
			slog.String("type", "wa"),
			slog.String("message_id", msg.ID))
		return false
	}

	cmd, ok := d.table.Match(text)
	if !ok {
		d.reply(ctx, msg.From, d.unrecognized(text))
		return true
	}

	event := &handlers.CommandEvent{
		MessageID: msg.ID,
		From:      msg.From,
		UserName:  users.DefaultUsername(msg.From),
		Text:      text,
	}

	reply, err := d.handlers[cmd.Name](ctx, event)
	if err != nil {
		reply = d.failureText(cmd.Name)
	}
	d.reply(ctx, msg.From, reply)
	return true
}

func (d *Dispatcher) unrecognized(text string) string {
	rest := text
	if i := strings.Index(text, d.wakeWord); i >= 0 {
		rest = text[:i] + " " + text[i+len(d.wakeWord):]
	}
	if c, ok := d.table.Suggest(rest); ok {
		return renderUnrecognized(d.wakeWord, d.table, &c)
	}
	return renderUnrecognized(d.wakeWord, d.table, nil)
}

func (d *Dispatcher) failureText(name string) string {
	if msg, ok := d.failures[name]; ok {
		return msg
	}
	return msgGenericFailure
}

func (d *Dispatcher) reply(ctx context.Context, to, body string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.NotificationTimeout)
	defer cancel()

	if err := d.notifier.SendText(ctx, to, body); err != nil {
		slog.Error("Failed to deliver reply",
			slog.String("type", "wa"),
			slog.String("to", to),
			slog.Any("error", err))
	}
}

func (d *Dispatcher) help(context.Context, *handlers.CommandEvent) (string, error) {
	return renderHelp(d.wakeWord, d.table, d.cooldown), nil
}

func (d *Dispatcher) openPack(ctx context.Context, e *handlers.CommandEvent) (string, error) {
	res, err := d.economy.OpenPack(ctx, e.From)
	if err != nil {
		return "", err
	}

	switch res.Outcome {
	case economy.PackCooldown:
		return renderCooldown(res.HoursRemaining), nil
	case economy.PackCatalogEmpty:
		return msgCatalogEmpty, nil
	default:
		return renderPack(res, d.cooldown), nil
	}
}

func (d *Dispatcher) viewAlbum(ctx context.Context, e *handlers.CommandEvent) (string, error) {
	res, err := d.economy.ViewAlbum(ctx, e.From)
	if err != nil {
		return "", err
	}
	return renderAlbum(res, d.linkTTL), nil
}
