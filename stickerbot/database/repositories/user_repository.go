package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/logger"
)

// ErrClaimConflict is returned when another pack claim advanced the user's
// cooldown between the eligibility check and the write.
var ErrClaimConflict = errors.New("pack claim conflict")

type UserRepository interface {
	// Upsert inserts the profile or, when the phone number exists, keeps the
	// stored row. The model is filled with the stored values.
	Upsert(ctx context.Context, user *models.User) error
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	// MarkPackOpened sets last_pack_opened_at to openedAt only if the previous
	// claim is absent or not after claimedBefore.
	MarkPackOpened(ctx context.Context, userID int64, openedAt, claimedBefore time.Time) error
}

type userRepository struct {
	db bun.IDB
}

func NewUserRepository(db bun.IDB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	start := time.Now()
	user.CreatedAt = start
	user.UpdatedAt = start

	_, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (phone_number) DO UPDATE").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)

	logger.LogQuery("UpsertUser", start, err, slog.String("phone_number", user.PhoneNumber))
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("phone_number = ?", phone).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) MarkPackOpened(ctx context.Context, userID int64, openedAt, claimedBefore time.Time) error {
	start := time.Now()
	result, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_pack_opened_at = ?", openedAt).
		Set("updated_at = ?", openedAt).
		Where("id = ?", userID).
		Where("last_pack_opened_at IS NULL OR last_pack_opened_at <= ?", claimedBefore).
		Exec(ctx)

	logger.LogQuery("MarkPackOpened", start, err, slog.Int64("user_id", userID))
	if err != nil {
		return fmt.Errorf("failed to update last_pack_opened_at: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrClaimConflict
	}
	return nil
}
