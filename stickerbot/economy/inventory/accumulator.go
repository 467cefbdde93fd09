// Package inventory credits drawn stickers to a user's collection.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
)

type Mode string

const (
	// ModeUpsert issues one atomic insert-or-increment per distinct sticker.
	ModeUpsert Mode = config.InventoryModeUpsert
	// ModeCheckThenWrite reads each entry and then creates or increments it.
	// Only safe when callers serialize per user.
	ModeCheckThenWrite Mode = config.InventoryModeCheckThenWrite
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeUpsert:
		return ModeUpsert, nil
	case ModeCheckThenWrite:
		return ModeCheckThenWrite, nil
	default:
		return "", fmt.Errorf("unknown inventory mode %q", s)
	}
}

type Accumulator struct {
	mode Mode
}

func NewAccumulator(mode Mode) *Accumulator {
	if mode == "" {
		mode = ModeUpsert
	}
	return &Accumulator{mode: mode}
}

func (a *Accumulator) Mode() Mode {
	return a.mode
}

// Apply adds one unit per id in ids. Repeated ids add repeated units. The
// first store error aborts and is returned; callers run Apply inside a
// transaction so partial credit is rolled back.
func (a *Accumulator) Apply(ctx context.Context, store repositories.UserStickerRepository, userID int64, ids []int64) error {
	if a.mode == ModeCheckThenWrite {
		for _, id := range ids {
			if err := a.checkThenWrite(ctx, store, userID, id); err != nil {
				return err
			}
		}
		return nil
	}

	for _, c := range Collapse(ids) {
		if err := store.Upsert(ctx, userID, c.StickerID, c.Count); err != nil {
			return fmt.Errorf("failed to credit sticker %d: %w", c.StickerID, err)
		}
	}
	return nil
}

func (a *Accumulator) checkThenWrite(ctx context.Context, store repositories.UserStickerRepository, userID, stickerID int64) error {
	_, err := store.Get(ctx, userID, stickerID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		entry := &models.UserSticker{UserID: userID, StickerID: stickerID, Quantity: 1}
		if err := store.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to credit sticker %d: %w", stickerID, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read inventory for sticker %d: %w", stickerID, err)
	}

	if err := store.Increment(ctx, userID, stickerID, 1); err != nil {
		return fmt.Errorf("failed to credit sticker %d: %w", stickerID, err)
	}
	return nil
}

type Count struct {
	StickerID int64
	Count     int
}

// Collapse groups ids by value, keeping first-appearance order.
func Collapse(ids []int64) []Count {
	index := make(map[int64]int, len(ids))
	counts := make([]Count, 0, len(ids))
	for _, id := range ids {
		if i, ok := index[id]; ok {
			counts[i].Count++
			continue
		}
		index[id] = len(counts)
		counts = append(counts, Count{StickerID: id, Count: 1})
	}
	return counts
}
