package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories/memstore"
	"github.com/silenole/stickerbot/stickerbot/database/repositories/mock"
)

func TestDefaultUsername(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{phone: "5491122334455", want: "Usuario4455"},
		{phone: "1234", want: "Usuario1234"},
		{phone: "12", want: "Usuario12"},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultUsername(tt.phone))
		})
	}
}

func TestResolve_CreatesThenReuses(t *testing.T) {
	store := memstore.New()
	resolver := NewResolver(store.Users())
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, "5491122334455")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "Usuario4455", first.Username)
	assert.Equal(t, "whatsapp", first.UserType)
	assert.Nil(t, first.LastPackOpenedAt)

	second, err := resolver.Resolve(ctx, "5491122334455")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := resolver.Resolve(ctx, "5491100000000")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestResolve_KeepsStoredUsername(t *testing.T) {
	repo := mock.NewMockUserRepository(gomock.NewController(t))
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
		u.ID = 9
		u.Username = "Messi10"
		return nil
	})

	user, err := NewResolver(repo).Resolve(context.Background(), "5491122334455")
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	assert.Equal(t, "Messi10", user.Username)
}

func TestResolve_Errors(t *testing.T) {
	repo := mock.NewMockUserRepository(gomock.NewController(t))
	boom := errors.New("db down")
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(boom)

	resolver := NewResolver(repo)

	_, err := resolver.Resolve(context.Background(), "5491122334455")
	assert.ErrorIs(t, err, boom)

	_, err = resolver.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPhone)
}
