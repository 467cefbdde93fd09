package tokens

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories/memstore"
	"github.com/silenole/stickerbot/stickerbot/database/repositories/mock"
)

func TestIssue_PersistsLinkWithExactExpiry(t *testing.T) {
	store := memstore.New()
	issuer := NewIssuer(store.MagicLinks(), "https://silenole.vercel.app/auth/token", 10*time.Minute)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tok, err := issuer.Issue(context.Background(), &models.User{ID: 3}, now)
	require.NoError(t, err)

	assert.Equal(t, now.Add(10*time.Minute), tok.ExpiresAt)
	_, err = uuid.Parse(tok.Value)
	assert.NoError(t, err)
	assert.Equal(t, "https://silenole.vercel.app/auth/token?token="+tok.Value, tok.URL)

	links := store.Links()
	require.Len(t, links, 1)
	assert.Equal(t, tok.Value, links[0].Token)
	assert.Equal(t, int64(3), links[0].UserID)
	assert.Equal(t, tok.ExpiresAt, links[0].ExpiresAt)
}

func TestIssue_TokensAreDistinct(t *testing.T) {
	store := memstore.New()
	issuer := NewIssuer(store.MagicLinks(), "", 0)
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tok, err := issuer.Issue(context.Background(), &models.User{ID: 1}, now)
		require.NoError(t, err)
		assert.False(t, seen[tok.Value])
		seen[tok.Value] = true
	}
	assert.Len(t, store.Links(), 50)
}

func TestIssue_KeepsExistingQuery(t *testing.T) {
	store := memstore.New()
	issuer := NewIssuer(store.MagicLinks(), "https://example.com/album?src=wa", time.Minute)

	tok, err := issuer.Issue(context.Background(), &models.User{ID: 1}, time.Now())
	require.NoError(t, err)
	assert.Contains(t, tok.URL, "src=wa")
	assert.Contains(t, tok.URL, "token="+tok.Value)
}

func TestIssue_StoreFailure(t *testing.T) {
	repo := mock.NewMockMagicLinkRepository(gomock.NewController(t))
	boom := errors.New("insert failed")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(boom)

	tok, err := NewIssuer(repo, "", 0).Issue(context.Background(), &models.User{ID: 1}, time.Now())
	assert.Nil(t, tok)
	assert.ErrorIs(t, err, boom)
}
