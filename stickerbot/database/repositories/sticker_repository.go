package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"
	"golang.org/x/sync/singleflight"

	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/logger"
)

type StickerRepository interface {
	GetAll(ctx context.Context) ([]*models.Sticker, error)
	// GetByIDs returns one entry per requested id, in request order, so
	// repeated ids yield repeated stickers. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Sticker, error)
	BulkUpsert(ctx context.Context, stickers []*models.Sticker) (int, error)
}

type stickerRepository struct {
	db    bun.IDB
	cache *lru.Cache
	group singleflight.Group
	load  func(ctx context.Context) ([]*models.Sticker, error)
}

func NewStickerRepository(db bun.IDB) StickerRepository {
	cache, _ := lru.New(config.StickerCacheSize)
	r := &stickerRepository{
		db:    db,
		cache: cache,
	}
	r.load = r.queryCatalog
	return r
}

// GetAll loads the catalog. Concurrent callers share one query, which runs
// detached from any single caller so one cancelled request does not fail
// the others.
func (r *stickerRepository) GetAll(ctx context.Context) ([]*models.Sticker, error) {
	ch := r.group.DoChan("catalog", func() (interface{}, error) {
		queryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.DefaultQueryTimeout)
		defer cancel()
		return r.load(queryCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*models.Sticker), nil
	}
}

func (r *stickerRepository) queryCatalog(ctx context.Context) ([]*models.Sticker, error) {
	start := time.Now()
	var stickers []*models.Sticker
	err := r.db.NewSelect().
		Model(&stickers).
		Order("id ASC").
		Scan(ctx)
	logger.LogQuery("GetCatalog", start, err, slog.Int("count", len(stickers)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stickers: %w", err)
	}
	for _, s := range stickers {
		r.cache.Add(s.ID, s)
	}
	return stickers, nil
}

func (r *stickerRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Sticker, error) {
	found := make(map[int64]*models.Sticker, len(ids))
	var missing []int64
	for _, id := range ids {
		if _, seen := found[id]; seen {
			continue
		}
		if cached, ok := r.cache.Get(id); ok {
			found[id] = cached.(*models.Sticker)
			continue
		}
		found[id] = nil
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		start := time.Now()
		var stickers []*models.Sticker
		err := r.db.NewSelect().
			Model(&stickers).
			Where("id IN (?)", bun.In(missing)).
			Scan(ctx)
		logger.LogQuery("GetStickersByIDs", start, err, slog.Int("count", len(missing)))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sticker details: %w", err)
		}
		for _, s := range stickers {
			r.cache.Add(s.ID, s)
			found[s.ID] = s
		}
	}

	result := make([]*models.Sticker, 0, len(ids))
	for _, id := range ids {
		if s := found[id]; s != nil {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *stickerRepository) BulkUpsert(ctx context.Context, stickers []*models.Sticker) (int, error) {
	if len(stickers) == 0 {
		return 0, nil
	}

	now := time.Now()
	for _, s := range stickers {
		s.CreatedAt = now
		s.UpdatedAt = now
	}

	start := time.Now()
	result, err := r.db.NewInsert().
		Model(&stickers).
		On("CONFLICT (id) DO UPDATE").
		Set("player_name = EXCLUDED.player_name").
		Set("team = EXCLUDED.team").
		Set("rarity = EXCLUDED.rarity").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	logger.LogQuery("BulkUpsertStickers", start, err, slog.Int("count", len(stickers)))
	if err != nil {
		return 0, fmt.Errorf("failed to upsert stickers: %w", err)
	}

	for _, s := range stickers {
		r.cache.Remove(s.ID)
	}

	affected, _ := result.RowsAffected()
	return int(affected), nil
}
