package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/silenole/stickerbot/stickerbot"
	"github.com/silenole/stickerbot/stickerbot/catalog"
	"github.com/silenole/stickerbot/stickerbot/database"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
	"github.com/silenole/stickerbot/stickerbot/logger"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	catalogPath := flag.String("catalog", "stickers.toml", "path to the sticker catalog")
	dryRun := flag.Bool("dry-run", false, "validate the catalog without writing")
	flag.Parse()

	slog.SetDefault(slog.New(logger.NewHandler("importstickers", slog.LevelInfo)))

	stickers, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		slog.Error("Invalid catalog", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Catalog loaded", slog.String("type", "sys"), slog.Int("stickers", len(stickers)))
	if *dryRun {
		return
	}

	cfg, err := stickerbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseConfig())
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(1)
	}

	if _, err := catalog.Import(ctx, repositories.NewStickerRepository(db.BunDB()), stickers); err != nil {
		slog.Error("Import failed", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("Import completed successfully!")
}
