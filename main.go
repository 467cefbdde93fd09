package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/silenole/stickerbot/backend"
	"github.com/silenole/stickerbot/backend/handlers"
	"github.com/silenole/stickerbot/stickerbot"
	"github.com/silenole/stickerbot/stickerbot/catalog"
	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/database"
	"github.com/silenole/stickerbot/stickerbot/database/repositories/memstore"
	"github.com/silenole/stickerbot/stickerbot/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	useMemory := flag.Bool("memory-store", false, "Keep all state in process memory instead of PostgreSQL")
	catalogPath := flag.String("catalog", "", "Sticker catalog to load on startup (memory store only)")
	syncSchema := flag.Bool("sync-schema", true, "Whether to create missing tables and indexes on startup")
	flag.Parse()

	slog.SetDefault(slog.New(logger.NewHandler("SileNole", slog.LevelInfo)))

	cfg, err := stickerbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler("SileNole", cfg.Log.Level).WithSource(cfg.Log.AddSource)))

	if err = cfg.Validate(!*useMemory); err != nil {
		slog.Error("Invalid configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}

	slog.Info("Starting SileNole sticker bot",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	b := stickerbot.New(*cfg, version, commit)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *useMemory {
		store := memstore.New()
		if *catalogPath != "" {
			if err = seedCatalog(ctx, store, *catalogPath); err != nil {
				slog.Error("Failed to load catalog", slog.String("type", "sys"), slog.Any("error", err))
				os.Exit(-1)
			}
		}
		b.UseMemory(store)
		slog.Warn("Using in-memory store, state will not survive restarts", slog.String("type", "sys"))
	} else {
		db, err := openDatabase(ctx, cfg, *syncSchema)
		if err != nil {
			slog.Error("Database setup failed", slog.String("type", "db"), slog.Any("error", err))
			os.Exit(-1)
		}
		defer db.Close()
		b.UseDatabase(db)
	}

	if err = b.Setup(); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"))
		os.Exit(-1)
	}
	b.Maintenance.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		b.Close(ctx)
	}()

	webApp := &handlers.WebApp{
		VerifyToken: cfg.WhatsApp.VerifyToken,
		Messages:    b.Dispatcher,
		Dedupe:      b.Dedupe,
		Version:     version,
		Commit:      commit,
	}
	if b.DB != nil {
		webApp.DB = b.DB
	}
	app := backend.NewApp(webApp)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Webhook server listening", slog.String("type", "sys"), slog.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-s:
		slog.Info("Shutting down bot...", slog.String("type", "sys"), slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			slog.Error("Webhook server stopped", slog.String("type", "sys"), slog.Any("error", err))
		}
	}

	if err := app.ShutdownWithTimeout(config.ShutdownTimeout); err != nil {
		slog.Error("Failed to shut down webhook server", slog.String("type", "sys"), slog.Any("error", err))
	}
}

func openDatabase(ctx context.Context, cfg *stickerbot.Config, syncSchema bool) (*database.DB, error) {
	start := time.Now()
	slog.Info("Initializing database connection...", slog.String("type", "db"))

	db, err := database.New(ctx, cfg.DatabaseConfig())
	if err != nil {
		return nil, fmt.Errorf("connect after %s: %w", time.Since(start), err)
	}
	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(start)))

	if syncSchema {
		if err := db.InitializeSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("initialize schema: %w", err)
		}
		slog.Info("Database schema initialized successfully", slog.String("type", "db"))
	}
	return db, nil
}

func seedCatalog(ctx context.Context, store *memstore.Store, path string) error {
	stickers, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	_, err = catalog.Import(ctx, store.Stickers(), stickers)
	return err
}
