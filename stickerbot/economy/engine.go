package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
	"github.com/silenole/stickerbot/stickerbot/economy/cooldown"
	"github.com/silenole/stickerbot/stickerbot/economy/inventory"
	"github.com/silenole/stickerbot/stickerbot/economy/sampler"
	"github.com/silenole/stickerbot/stickerbot/economy/tokens"
	"github.com/silenole/stickerbot/stickerbot/economy/users"
	"github.com/silenole/stickerbot/stickerbot/events"
)

// PackOutcome describes how an open-pack request ended. Rejections are
// outcomes, not errors.
type PackOutcome int

const (
	PackOpened PackOutcome = iota
	PackCooldown
	PackCatalogEmpty
)

func (o PackOutcome) String() string {
	switch o {
	case PackOpened:
		return "opened"
	case PackCooldown:
		return "cooldown"
	case PackCatalogEmpty:
		return "catalog_empty"
	default:
		return "unknown"
	}
}

type PackResult struct {
	Outcome PackOutcome
	User    *models.User

	// Stickers holds one entry per draw, in draw order. Repeated draws
	// repeat the sticker.
	Stickers       []*models.Sticker
	HoursRemaining int
	OpenedAt       time.Time
}

type AlbumResult struct {
	User  *models.User
	Token *tokens.Token
}

// Dependencies groups the stores and components the engine coordinates.
type Dependencies struct {
	Users      repositories.UserRepository
	Stickers   repositories.StickerRepository
	MagicLinks repositories.MagicLinkRepository
	Transactor repositories.Transactor

	Sampler     *sampler.Sampler
	Gate        *cooldown.Gate
	Accumulator *inventory.Accumulator
	Issuer      *tokens.Issuer
	Events      events.Publisher
}

type Engine struct {
	users       repositories.UserRepository
	stickers    repositories.StickerRepository
	tx          repositories.Transactor
	resolver    *users.Resolver
	sampler     *sampler.Sampler
	gate        *cooldown.Gate
	accumulator *inventory.Accumulator
	issuer      *tokens.Issuer
	events      events.Publisher

	packSize int
	now      func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithPackSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.packSize = n
		}
	}
}

// NewEngine fills in defaults for any component left nil.
func NewEngine(deps Dependencies, opts ...Option) *Engine {
	e := &Engine{
		users:       deps.Users,
		stickers:    deps.Stickers,
		tx:          deps.Transactor,
		resolver:    users.NewResolver(deps.Users),
		sampler:     deps.Sampler,
		gate:        deps.Gate,
		accumulator: deps.Accumulator,
		issuer:      deps.Issuer,
		events:      deps.Events,
		packSize:    config.PackSize,
		now:         time.Now,
	}

	if e.sampler == nil {
		e.sampler = sampler.New()
	}
	if e.gate == nil {
		e.gate = cooldown.NewGate(config.PackCooldown)
	}
	if e.accumulator == nil {
		e.accumulator = inventory.NewAccumulator(inventory.ModeUpsert)
	}
	if e.issuer == nil {
		e.issuer = tokens.NewIssuer(deps.MagicLinks, config.DefaultAlbumURL, config.AccessTokenTTL)
	}
	if e.events == nil {
		e.events = events.Nop{}
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OpenPack grants one pack of stickers to the user behind phone if their
// cooldown has elapsed. Crediting the stickers and advancing the claim
// timestamp happen in one transaction.
func (e *Engine) OpenPack(ctx context.Context, phone string) (*PackResult, error) {
	user, err := e.resolver.Resolve(ctx, phone)
	if err != nil {
		return nil, err
	}

	now := e.now()
	if elig := e.gate.CheckEligible(user.LastPackOpenedAt, now); !elig.Eligible {
		return &PackResult{Outcome: PackCooldown, User: user, HoursRemaining: elig.HoursRemaining}, nil
	}

	catalog, err := e.stickers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	ids, err := e.sampler.DrawN(catalog, e.packSize)
	if errors.Is(err, sampler.ErrNoItems) {
		slog.Warn("Pack requested with empty catalog",
			slog.String("type", "sys"),
			slog.Int64("user_id", user.ID))
		return &PackResult{Outcome: PackCatalogEmpty, User: user}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to draw pack: %w", err)
	}

	err = e.tx.InTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		if err := e.accumulator.Apply(ctx, repos.UserStickers, user.ID, ids); err != nil {
			return err
		}
		return repos.Users.MarkPackOpened(ctx, user.ID, now, e.gate.ClaimedBefore(now))
	})
	if errors.Is(err, repositories.ErrClaimConflict) {
		slog.Info("Concurrent pack claim rejected",
			slog.String("type", "sys"),
			slog.Int64("user_id", user.ID))
		return &PackResult{Outcome: PackCooldown, User: user, HoursRemaining: e.hoursAfterConflict(ctx, user, now)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open pack: %w", err)
	}

	first := !user.HasClaimedPack()
	opened := now
	user.LastPackOpenedAt = &opened

	e.publish(ctx, events.PackOpened, events.PackOpenedEvent{
		UserID:     user.ID,
		Phone:      user.PhoneNumber,
		StickerIDs: ids,
		FirstPack:  first,
		OpenedAt:   now,
	})

	return &PackResult{
		Outcome:  PackOpened,
		User:     user,
		Stickers: e.describe(ctx, ids),
		OpenedAt: now,
	}, nil
}

// hoursAfterConflict reports the cooldown left after another request won the
// claim. It re-reads the user and falls back to the full window.
func (e *Engine) hoursAfterConflict(ctx context.Context, user *models.User, now time.Time) int {
	full := int(math.Ceil(e.gate.Window().Hours()))
	latest, err := e.users.GetByPhone(ctx, user.PhoneNumber)
	if err != nil {
		return full
	}
	user.LastPackOpenedAt = latest.LastPackOpenedAt
	if elig := e.gate.CheckEligible(latest.LastPackOpenedAt, now); !elig.Eligible {
		return elig.HoursRemaining
	}
	return full
}

// describe returns display metadata for every drawn id. The pack is already
// credited at this point, so a lookup failure degrades to bare ids.
func (e *Engine) describe(ctx context.Context, ids []int64) []*models.Sticker {
	found, err := e.stickers.GetByIDs(ctx, ids)
	if err != nil {
		slog.Warn("Failed to load pack details",
			slog.String("type", "db"),
			slog.Any("error", err))
	}

	byID := make(map[int64]*models.Sticker, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	out := make([]*models.Sticker, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, &models.Sticker{ID: id, Rarity: string(sampler.Common)})
	}
	return out
}

// ViewAlbum issues a fresh album link for the user behind phone.
func (e *Engine) ViewAlbum(ctx context.Context, phone string) (*AlbumResult, error) {
	user, err := e.resolver.Resolve(ctx, phone)
	if err != nil {
		return nil, err
	}

	now := e.now()
	token, err := e.issuer.Issue(ctx, user, now)
	if err != nil {
		return nil, err
	}

	e.publish(ctx, events.AlbumLinkIssued, events.AlbumLinkIssuedEvent{
		UserID:    user.ID,
		ExpiresAt: token.ExpiresAt,
		IssuedAt:  now,
	})

	return &AlbumResult{User: user, Token: token}, nil
}

func (e *Engine) publish(ctx context.Context, subject string, data interface{}) {
	if err := e.events.Publish(ctx, subject, data); err != nil {
		slog.Warn("Failed to publish event",
			slog.String("type", "sys"),
			slog.String("subject", subject),
			slog.Any("error", err))
	}
}
