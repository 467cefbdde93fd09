package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
)

func TestInTx_RollbackDiscardsOwnWrites(t *testing.T) {
	store := New()
	ctx := context.Background()

	user := &models.User{PhoneNumber: "5491100000001", Username: "Usuario0001"}
	require.NoError(t, store.Users().Upsert(ctx, user))

	boom := errors.New("boom")
	err := store.InTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		require.NoError(t, repos.UserStickers.Upsert(ctx, user.ID, 7, 2))
		require.NoError(t, repos.Users.MarkPackOpened(ctx, user.ID, time.Now(), time.Now().Add(-time.Hour)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, err := store.UserStickers().GetAllByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	got, err := store.Users().GetByPhone(ctx, user.PhoneNumber)
	require.NoError(t, err)
	assert.Nil(t, got.LastPackOpenedAt)
}

func TestInTx_RollbackKeepsConcurrentWrites(t *testing.T) {
	store := New()
	ctx := context.Background()

	owner := &models.User{PhoneNumber: "5491100000001", Username: "Usuario0001"}
	require.NoError(t, store.Users().Upsert(ctx, owner))

	var wg sync.WaitGroup
	boom := errors.New("boom")
	err := store.InTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		require.NoError(t, repos.UserStickers.Upsert(ctx, owner.ID, 7, 1))

		wg.Add(1)
		go func() {
			defer wg.Done()
			other := &models.User{PhoneNumber: "5491100000002", Username: "Usuario0002"}
			assert.NoError(t, store.Users().Upsert(ctx, other))
			assert.NoError(t, store.MagicLinks().Create(ctx, &models.MagicLink{
				Token:     "tok-1",
				UserID:    other.ID,
				ExpiresAt: time.Now().Add(10 * time.Minute),
			}))
		}()
		// Give the outside writer a chance to race the rollback.
		time.Sleep(20 * time.Millisecond)
		return boom
	})
	require.ErrorIs(t, err, boom)
	wg.Wait()

	other, err := store.Users().GetByPhone(ctx, "5491100000002")
	require.NoError(t, err)
	assert.Equal(t, "Usuario0002", other.Username)
	assert.Len(t, store.Links(), 1)

	entries, err := store.UserStickers().GetAllByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInTx_CommitKeepsWrites(t *testing.T) {
	store := New()
	ctx := context.Background()

	user := &models.User{PhoneNumber: "5491100000001"}
	require.NoError(t, store.Users().Upsert(ctx, user))

	require.NoError(t, store.InTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		return repos.UserStickers.Upsert(ctx, user.ID, 3, 2)
	}))

	entry, err := store.UserStickers().Get(ctx, user.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Quantity)
}

func TestInTx_AbandonedContextRollsBack(t *testing.T) {
	store := New()
	user := &models.User{PhoneNumber: "5491100000001"}
	require.NoError(t, store.Users().Upsert(context.Background(), user))

	ctx, cancel := context.WithCancel(context.Background())
	err := store.InTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		require.NoError(t, repos.UserStickers.Upsert(ctx, user.ID, 3, 1))
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	entries, err := store.UserStickers().GetAllByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
