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

type UserStickerRepository interface {
	// Get returns sql.ErrNoRows when the user does not own the sticker.
	Get(ctx context.Context, userID, stickerID int64) (*models.UserSticker, error)
	Create(ctx context.Context, entry *models.UserSticker) error
	Increment(ctx context.Context, userID, stickerID int64, by int) error
	// Upsert creates the entry with quantity by, or adds by to the existing one,
	// in a single statement.
	Upsert(ctx context.Context, userID, stickerID int64, by int) error
	GetAllByUserID(ctx context.Context, userID int64) ([]*models.UserSticker, error)
}

type userStickerRepository struct {
	db bun.IDB
}

func NewUserStickerRepository(db bun.IDB) UserStickerRepository {
	return &userStickerRepository{db: db}
}

func (r *userStickerRepository) Get(ctx context.Context, userID, stickerID int64) (*models.UserSticker, error) {
	entry := new(models.UserSticker)
	err := r.db.NewSelect().
		Model(entry).
		Where("user_id = ? AND sticker_id = ?", userID, stickerID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *userStickerRepository) Create(ctx context.Context, entry *models.UserSticker) error {
	start := time.Now()
	entry.CreatedAt = start
	entry.UpdatedAt = start
	_, err := r.db.NewInsert().Model(entry).Exec(ctx)
	logger.LogQuery("CreateUserSticker", start, err,
		slog.Int64("user_id", entry.UserID),
		slog.Int64("sticker_id", entry.StickerID))
	if err != nil {
		return fmt.Errorf("failed to insert sticker: %w", err)
	}
	return nil
}

func (r *userStickerRepository) Increment(ctx context.Context, userID, stickerID int64, by int) error {
	start := time.Now()
	_, err := r.db.NewUpdate().
		Model((*models.UserSticker)(nil)).
		Set("quantity = quantity + ?", by).
		Set("updated_at = ?", start).
		Where("user_id = ? AND sticker_id = ?", userID, stickerID).
		Exec(ctx)
	logger.LogQuery("IncrementUserSticker", start, err,
		slog.Int64("user_id", userID),
		slog.Int64("sticker_id", stickerID))
	if err != nil {
		return fmt.Errorf("failed to update sticker quantity: %w", err)
	}
	return nil
}

func (r *userStickerRepository) Upsert(ctx context.Context, userID, stickerID int64, by int) error {
	start := time.Now()
	entry := &models.UserSticker{
		UserID:    userID,
		StickerID: stickerID,
		Quantity:  by,
		CreatedAt: start,
		UpdatedAt: start,
	}
	_, err := r.db.NewInsert().
		Model(entry).
		On("CONFLICT (user_id, sticker_id) DO UPDATE").
		Set("quantity = ?TableAlias.quantity + EXCLUDED.quantity").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	logger.LogQuery("UpsertUserSticker", start, err,
		slog.Int64("user_id", userID),
		slog.Int64("sticker_id", stickerID),
		slog.Int("by", by))
	if err != nil {
		return fmt.Errorf("failed to upsert sticker: %w", err)
	}
	return nil
}

func (r *userStickerRepository) GetAllByUserID(ctx context.Context, userID int64) ([]*models.UserSticker, error) {
	var entries []*models.UserSticker
	err := r.db.NewSelect().
		Model(&entries).
		Where("user_id = ?", userID).
		Order("sticker_id ASC").
		Scan(ctx)
	return entries, err
}
