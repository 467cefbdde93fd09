// Package catalog loads sticker reference data into the store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"

	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
	"github.com/silenole/stickerbot/stickerbot/economy/sampler"
)

const (
	batchSize            = 100
	maxConcurrentBatches = 4
)

type file struct {
	Stickers []*models.Sticker `toml:"stickers"`
}

// LoadFile reads a catalog file with one [[stickers]] table per item.
func LoadFile(path string) ([]*models.Sticker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses and validates a catalog. Unknown rarities are normalized to
// common, matching how the sampler weighs them.
func Decode(r io.Reader) ([]*models.Sticker, error) {
	var cat file
	if err := toml.NewDecoder(r).Decode(&cat); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	var errs []error
	seen := make(map[int64]bool, len(cat.Stickers))
	for i, s := range cat.Stickers {
		if s.ID <= 0 {
			errs = append(errs, fmt.Errorf("stickers[%d]: id must be positive", i))
		} else if seen[s.ID] {
			errs = append(errs, fmt.Errorf("stickers[%d]: duplicate id %d", i, s.ID))
		}
		seen[s.ID] = true

		s.PlayerName = strings.TrimSpace(s.PlayerName)
		if s.PlayerName == "" {
			errs = append(errs, fmt.Errorf("stickers[%d]: player_name is required", i))
		}
		s.Team = strings.TrimSpace(s.Team)
		s.Rarity = string(sampler.ParseRarity(s.Rarity))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cat.Stickers, nil
}

// Import upserts stickers in concurrent batches and returns the number of rows written.
func Import(ctx context.Context, repo repositories.StickerRepository, stickers []*models.Sticker) (int, error) {
	start := time.Now()
	var written atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBatches)

	for lo := 0; lo < len(stickers); lo += batchSize {
		hi := min(lo+batchSize, len(stickers))
		batch := stickers[lo:hi]
		g.Go(func() error {
			n, err := repo.BulkUpsert(gctx, batch)
			if err != nil {
				return fmt.Errorf("batch %d-%d: %w", lo, hi, err)
			}
			written.Add(int64(n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(written.Load()), err
	}

	slog.Info("Catalog imported",
		slog.String("type", "db"),
		slog.Int("stickers", len(stickers)),
		slog.Int64("written", written.Load()),
		slog.Duration("took", time.Since(start)))
	return int(written.Load()), nil
}
