package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/logger"
)

type MagicLinkRepository interface {
	Create(ctx context.Context, link *models.MagicLink) error
	// DeleteExpired removes links that expired before the cutoff, redeemed or not.
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

type magicLinkRepository struct {
	db bun.IDB
}

func NewMagicLinkRepository(db bun.IDB) MagicLinkRepository {
	return &magicLinkRepository{db: db}
}

func (r *magicLinkRepository) Create(ctx context.Context, link *models.MagicLink) error {
	start := time.Now()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = start
	}
	_, err := r.db.NewInsert().Model(link).Exec(ctx)
	logger.LogQuery("CreateMagicLink", start, err, slog.Int64("user_id", link.UserID))
	if err != nil {
		return fmt.Errorf("failed to create magic link: %w", err)
	}
	return nil
}

func (r *magicLinkRepository) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	start := time.Now()
	result, err := r.db.NewDelete().
		Model((*models.MagicLink)(nil)).
		Where("expires_at < ?", before).
		Exec(ctx)
	logger.LogQuery("DeleteExpiredMagicLinks", start, err, slog.Time("before", before))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired magic links: %w", err)
	}

	affected, _ := result.RowsAffected()
	return int(affected), nil
}
