package stickerbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/silenole/stickerbot/stickerbot/commands"
	"github.com/silenole/stickerbot/stickerbot/database"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
	"github.com/silenole/stickerbot/stickerbot/database/repositories/memstore"
	"github.com/silenole/stickerbot/stickerbot/dedupe"
	"github.com/silenole/stickerbot/stickerbot/economy"
	"github.com/silenole/stickerbot/stickerbot/economy/cooldown"
	"github.com/silenole/stickerbot/stickerbot/economy/inventory"
	"github.com/silenole/stickerbot/stickerbot/economy/sampler"
	"github.com/silenole/stickerbot/stickerbot/economy/tokens"
	economyutils "github.com/silenole/stickerbot/stickerbot/economy/utils"
	"github.com/silenole/stickerbot/stickerbot/events"
	"github.com/silenole/stickerbot/stickerbot/maintenance"
	"github.com/silenole/stickerbot/stickerbot/whatsapp"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

type Bot struct {
	Cfg     Config
	Version string
	Commit  string

	DB     *database.DB
	Memory *memstore.Store

	UserRepository        repositories.UserRepository
	StickerRepository     repositories.StickerRepository
	UserStickerRepository repositories.UserStickerRepository
	MagicLinkRepository   repositories.MagicLinkRepository
	Transactor            repositories.Transactor

	Engine      *economy.Engine
	Dispatcher  *commands.Dispatcher
	WhatsApp    *whatsapp.Client
	Events      events.Publisher
	Dedupe      dedupe.Deduper
	Maintenance *maintenance.Scheduler
}

// UseDatabase binds the repositories to PostgreSQL.
func (b *Bot) UseDatabase(db *database.DB) {
	b.DB = db
	b.UserRepository = repositories.NewUserRepository(db.BunDB())
	b.StickerRepository = repositories.NewStickerRepository(db.BunDB())
	b.UserStickerRepository = repositories.NewUserStickerRepository(db.BunDB())
	b.MagicLinkRepository = repositories.NewMagicLinkRepository(db.BunDB())
	b.Transactor = repositories.NewTransactor(economyutils.NewEconomicTransactionManager(db.BunDB()))
}

// UseMemory binds the repositories to a process-local store. State is lost
// on exit.
func (b *Bot) UseMemory(store *memstore.Store) {
	b.Memory = store
	b.UserRepository = store.Users()
	b.StickerRepository = store.Stickers()
	b.UserStickerRepository = store.UserStickers()
	b.MagicLinkRepository = store.MagicLinks()
	b.Transactor = store
}

// Setup builds the economy engine, the outbound client and the dispatcher
// from the loaded configuration. A store must be bound first.
func (b *Bot) Setup() error {
	if b.Transactor == nil {
		return errors.New("no store bound to bot")
	}

	mode, err := inventory.ParseMode(b.Cfg.Economy.InventoryMode)
	if err != nil {
		return err
	}

	publisher, err := events.Connect(b.Cfg.NATS.URL)
	if err != nil {
		slog.Warn("Event bus unavailable, events disabled",
			slog.String("type", "sys"),
			slog.Any("error", err))
		publisher = events.Nop{}
	}
	b.Events = publisher

	deduper, err := dedupe.New(b.Cfg.Redis.URL, b.Cfg.Redis.DedupeTTL.Duration)
	if err != nil {
		return fmt.Errorf("failed to create deduper: %w", err)
	}
	b.Dedupe = deduper

	b.Engine = economy.NewEngine(economy.Dependencies{
		Users:       b.UserRepository,
		Stickers:    b.StickerRepository,
		MagicLinks:  b.MagicLinkRepository,
		Transactor:  b.Transactor,
		Sampler:     sampler.New(sampler.WithWeights(sampler.WeightsFromConfig(b.Cfg.Economy.Weights))),
		Gate:        cooldown.NewGate(b.Cfg.Economy.Cooldown.Duration),
		Accumulator: inventory.NewAccumulator(mode),
		Issuer:      tokens.NewIssuer(b.MagicLinkRepository, b.Cfg.Bot.AlbumURL, b.Cfg.Economy.TokenTTL.Duration),
		Events:      b.Events,
	}, economy.WithPackSize(b.Cfg.Economy.PackSize))

	b.WhatsApp = whatsapp.NewClient(whatsapp.ClientConfig{
		Token:         b.Cfg.WhatsApp.Token,
		PhoneNumberID: b.Cfg.WhatsApp.PhoneNumberID,
		BaseURL:       b.Cfg.WhatsApp.BaseURL,
		APIVersion:    b.Cfg.WhatsApp.APIVersion,
		Timeout:       b.Cfg.WhatsApp.Timeout.Duration,
	})

	table := make(commands.Table, 0, len(b.Cfg.Bot.Commands))
	for _, c := range b.Cfg.Bot.Commands {
		table = append(table, commands.Command{Name: c.Name, Keyword: c.Keyword})
	}

	b.Dispatcher, err = commands.NewDispatcher(b.Engine, b.WhatsApp,
		commands.WithWakeWord(b.Cfg.Bot.WakeWord),
		commands.WithTable(table),
		commands.WithDurations(b.Cfg.Economy.Cooldown.Duration, b.Cfg.Economy.TokenTTL.Duration))
	if err != nil {
		return fmt.Errorf("failed to build dispatcher: %w", err)
	}

	b.Maintenance, err = maintenance.NewScheduler(b.MagicLinkRepository,
		b.Cfg.Maintenance.LinkPurgeSchedule, b.Cfg.Maintenance.LinkRetention.Duration)
	if err != nil {
		return err
	}

	slog.Info("Bot components ready",
		slog.String("type", "sys"),
		slog.String("inventory_mode", string(mode)),
		slog.Int("pack_size", b.Cfg.Economy.PackSize),
		slog.Duration("cooldown", b.Cfg.Economy.Cooldown.Duration),
		slog.Bool("memory_store", b.Memory != nil))
	return nil
}

// Close stops background jobs and releases external connections. The
// database is closed by its owner.
func (b *Bot) Close(ctx context.Context) {
	if b.Maintenance != nil {
		b.Maintenance.Stop(ctx)
	}
	if b.Events != nil {
		if err := b.Events.Close(); err != nil {
			slog.Error("Failed to close event publisher", slog.String("type", "sys"), slog.Any("error", err))
		}
	}
	if b.Dedupe != nil {
		if err := b.Dedupe.Close(); err != nil {
			slog.Error("Failed to close deduper", slog.String("type", "sys"), slog.Any("error", err))
		}
	}
}

// DatabaseConfig converts the [db] section for the database package.
func (c Config) DatabaseConfig() database.DBConfig {
	return database.DBConfig{
		Host:     c.DB.Host,
		Port:     c.DB.Port,
		User:     c.DB.User,
		Password: c.DB.Password,
		Database: c.DB.Database,
		PoolSize: c.DB.PoolSize,
	}
}
