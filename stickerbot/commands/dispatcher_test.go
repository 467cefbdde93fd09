package commands

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/silenole/stickerbot/stickerbot/commands/mock"
	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories/memstore"
	"github.com/silenole/stickerbot/stickerbot/economy"
	"github.com/silenole/stickerbot/stickerbot/economy/sampler"
	"github.com/silenole/stickerbot/stickerbot/economy/tokens"
)

const from = "5491122334455"

// outbox records delivered replies.
type outbox struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (o *outbox) SendText(_ context.Context, to, body string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, body)
	return o.err
}

func (o *outbox) last(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent)
	return o.sent[len(o.sent)-1]
}

func newMocks(t *testing.T) (*mock.MockEconomy, *mock.MockNotifier) {
	ctrl := gomock.NewController(t)
	return mock.NewMockEconomy(ctrl), mock.NewMockNotifier(ctrl)
}

func TestHandle_IgnoresMessagesWithoutWakeWord(t *testing.T) {
	econ, notifier := newMocks(t)
	d, err := NewDispatcher(econ, notifier)
	require.NoError(t, err)

	assert.False(t, d.Handle(context.Background(), Message{ID: "1", From: from, Text: "abrir sobre"}))
}

func TestHandle_Help(t *testing.T) {
	econ, notifier := newMocks(t)
	notifier.EXPECT().SendText(gomock.Any(), from, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, body string) error {
			assert.Contains(t, body, "*@silenole abrir sobre*")
			assert.Contains(t, body, "*@silenole ver album*")
			assert.Contains(t, body, "*@silenole ayuda*")
			assert.Contains(t, body, "(1 por día)")
			return nil
		})

	d, err := NewDispatcher(econ, notifier)
	require.NoError(t, err)
	assert.True(t, d.Handle(context.Background(), Message{ID: "1", From: from, Text: "  @SileNole AYUDA "}))
}

func TestHandle_FirstKeywordWins(t *testing.T) {
	econ, notifier := newMocks(t)
	notifier.EXPECT().SendText(gomock.Any(), from, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, body string) error {
			assert.Contains(t, body, "Comandos disponibles")
			return nil
		})

	d, err := NewDispatcher(econ, notifier)
	require.NoError(t, err)
	d.Handle(context.Background(), Message{From: from, Text: "@silenole abrir sobre ayuda"})
}

func TestHandle_OpenPackOutcomes(t *testing.T) {
	user := &models.User{ID: 1, Username: "Usuario4455"}

	tests := []struct {
		name   string
		result *economy.PackResult
		err    error
		want   []string
	}{
		{
			name: "opened",
			result: &economy.PackResult{Outcome: economy.PackOpened, User: user, Stickers: []*models.Sticker{
				{ID: 1, PlayerName: "Pedri", Team: "Barcelona", Rarity: "common"},
				{ID: 4, PlayerName: "Lamine Yamal", Team: "Barcelona", Rarity: "legendary"},
				{ID: 1, PlayerName: "Pedri", Team: "Barcelona", Rarity: "common"},
				{ID: 2, PlayerName: "Gavi", Team: "Barcelona", Rarity: "rare"},
				{ID: 9, Rarity: "common"},
			}},
			want: []string{
				"¡Usuario4455 ha abierto un sobre!",
				"🟠 Lamine Yamal (Barcelona)\n🟡 Gavi (Barcelona)\n⚪ Pedri (Barcelona)\n⚪ Pedri (Barcelona)\n⚪ Cromo #9",
				"Próximo sobre disponible en 24 horas",
			},
		},
		{
			name:   "cooldown",
			result: &economy.PackResult{Outcome: economy.PackCooldown, User: user, HoursRemaining: 23},
			want:   []string{"Debes esperar 23 horas"},
		},
		{
			name:   "cooldown last hour",
			result: &economy.PackResult{Outcome: economy.PackCooldown, User: user, HoursRemaining: 1},
			want:   []string{"Debes esperar 1 hora antes"},
		},
		{
			name:   "empty catalog",
			result: &economy.PackResult{Outcome: economy.PackCatalogEmpty, User: user},
			want:   []string{"No hay cromos disponibles"},
		},
		{
			name: "store failure",
			err:  errors.New("db down"),
			want: []string{"Error al abrir el sobre"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			econ, notifier := newMocks(t)
			econ.EXPECT().OpenPack(gomock.Any(), from).Return(tt.result, tt.err)
			notifier.EXPECT().SendText(gomock.Any(), from, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ string, body string) error {
					for _, w := range tt.want {
						assert.Contains(t, body, w)
					}
					return nil
				})

			d, err := NewDispatcher(econ, notifier)
			require.NoError(t, err)
			d.Handle(context.Background(), Message{From: from, Text: "@silenole abrir sobre"})
		})
	}
}

func TestHandle_ViewAlbum(t *testing.T) {
	econ, notifier := newMocks(t)
	econ.EXPECT().ViewAlbum(gomock.Any(), from).Return(&economy.AlbumResult{
		User:  &models.User{ID: 1},
		Token: &tokens.Token{Value: "abc", URL: "https://silenole.vercel.app/auth/token?token=abc"},
	}, nil)
	notifier.EXPECT().SendText(gomock.Any(), from, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, body string) error {
			assert.Contains(t, body, "https://silenole.vercel.app/auth/token?token=abc")
			assert.Contains(t, body, "expira en 10 minutos")
			return nil
		})

	d, err := NewDispatcher(econ, notifier)
	require.NoError(t, err)
	d.Handle(context.Background(), Message{From: from, Text: "@silenole ver album"})
}

func TestHandle_QuotesConfiguredDurations(t *testing.T) {
	user := &models.User{ID: 1, Username: "Usuario4455"}
	econ, notifier := newMocks(t)
	econ.EXPECT().OpenPack(gomock.Any(), from).Return(&economy.PackResult{
		Outcome:  economy.PackOpened,
		User:     user,
		Stickers: []*models.Sticker{{ID: 1, PlayerName: "Pedri", Rarity: "common"}},
	}, nil)
	econ.EXPECT().ViewAlbum(gomock.Any(), from).Return(&economy.AlbumResult{
		User:  user,
		Token: &tokens.Token{Value: "abc", URL: "https://silenole.vercel.app/auth/token?token=abc"},
	}, nil)

	var bodies []string
	notifier.EXPECT().SendText(gomock.Any(), from, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, body string) error {
			bodies = append(bodies, body)
			return nil
		}).Times(3)

	d, err := NewDispatcher(econ, notifier, WithDurations(12*time.Hour, 90*time.Second))
	require.NoError(t, err)
	ctx := context.Background()
	d.Handle(ctx, Message{From: from, Text: "@silenole abrir sobre"})
	d.Handle(ctx, Message{From: from, Text: "@silenole ver album"})
	d.Handle(ctx, Message{From: from, Text: "@silenole ayuda"})

	require.Len(t, bodies, 3)
	assert.Contains(t, bodies[0], "Próximo sobre disponible en 12 horas")
	assert.Contains(t, bodies[1], "expira en 90 segundos")
	assert.Contains(t, bodies[2], "(1 cada 12 horas)")
}

func TestSpanishDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 24 * time.Hour, want: "24 horas"},
		{in: time.Hour, want: "1 hora"},
		{in: 90 * time.Minute, want: "90 minutos"},
		{in: time.Minute, want: "1 minuto"},
		{in: 45 * time.Second, want: "45 segundos"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, spanishDuration(tt.in))
		})
	}
}

func TestHandle_ViewAlbumFailure(t *testing.T) {
	econ, notifier := newMocks(t)
	econ.EXPECT().ViewAlbum(gomock.Any(), from).Return(nil, errors.New("insert failed"))
	notifier.EXPECT().SendText(gomock.Any(), from, msgAlbumFailure).Return(nil)

	d, err := NewDispatcher(econ, notifier)
	require.NoError(t, err)
	d.Handle(context.Background(), Message{From: from, Text: "@silenole ver album"})
}

func TestHandle_UnrecognizedWithSuggestion(t *testing.T) {
	econ, notifier := newMocks(t)
	notifier.EXPECT().SendText(gomock.Any(), from, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, body string) error {
			assert.Contains(t, body, "Comando no reconocido")
			assert.Contains(t, body, "¿Quisiste decir \"@silenole ver album\"?")
			return nil
		})

	d, err := NewDispatcher(econ, notifier)
	require.NoError(t, err)
	d.Handle(context.Background(), Message{From: from, Text: "@silenole album"})
}

func TestHandle_UnrecognizedWithoutSuggestion(t *testing.T) {
	econ, notifier := newMocks(t)
	notifier.EXPECT().SendText(gomock.Any(), from, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, body string) error {
			assert.Contains(t, body, "Comando no reconocido")
			assert.NotContains(t, body, "Quisiste decir")
			return nil
		})

	d, err := NewDispatcher(econ, notifier)
	require.NoError(t, err)
	d.Handle(context.Background(), Message{From: from, Text: "@silenole"})
}

func TestHandle_DeliveryFailureIsSwallowed(t *testing.T) {
	econ, notifier := newMocks(t)
	notifier.EXPECT().SendText(gomock.Any(), from, gomock.Any()).Return(errors.New("graph api 500"))

	d, err := NewDispatcher(econ, notifier)
	require.NoError(t, err)
	assert.True(t, d.Handle(context.Background(), Message{From: from, Text: "@silenole ayuda"}))
}

func TestNewDispatcher_CustomTable(t *testing.T) {
	econ, notifier := newMocks(t)
	notifier.EXPECT().SendText(gomock.Any(), from, gomock.Any()).Return(nil)

	table := Table{
		{Name: "help", Keyword: "HELP"},
		{Name: "open_pack", Keyword: "open"},
		{Name: "view_album", Keyword: "album"},
	}
	d, err := NewDispatcher(econ, notifier, WithWakeWord("@Bot"), WithTable(table))
	require.NoError(t, err)
	assert.Equal(t, "HELP", table[0].Keyword)
	assert.True(t, d.Handle(context.Background(), Message{From: from, Text: "@bot help"}))

	_, err = NewDispatcher(econ, notifier, WithTable(Table{{Name: "trade", Keyword: "cambiar"}}))
	assert.Error(t, err)
}

func engineFor(store *memstore.Store, now func() time.Time) *economy.Engine {
	return economy.NewEngine(economy.Dependencies{
		Users:      store.Users(),
		Stickers:   store.Stickers(),
		MagicLinks: store.MagicLinks(),
		Transactor: store,
		Sampler:    sampler.New(sampler.WithSource(rand.NewSource(5))),
	}, economy.WithClock(now))
}

func TestScenario_OpenPackTwice(t *testing.T) {
	store := memstore.New()
	store.Seed(
		models.Sticker{ID: 1, PlayerName: "Pedri", Team: "Barcelona", Rarity: "common"},
		models.Sticker{ID: 2, PlayerName: "Vinicius", Team: "Real Madrid", Rarity: "epic"},
	)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	out := &outbox{}
	d, err := NewDispatcher(engineFor(store, func() time.Time { return now }), out)
	require.NoError(t, err)
	ctx := context.Background()

	d.Handle(ctx, Message{From: from, Text: "@silenole abrir sobre"})
	body := out.last(t)
	lines := 0
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "⚪ ") || strings.HasPrefix(line, "🟣 ") {
			lines++
		}
	}
	assert.Equal(t, 5, lines)

	user, err := store.Users().GetByPhone(ctx, from)
	require.NoError(t, err)
	require.NotNil(t, user.LastPackOpenedAt)
	assert.Equal(t, now, *user.LastPackOpenedAt)

	d.Handle(ctx, Message{From: from, Text: "@silenole abrir sobre"})
	assert.Contains(t, out.last(t), "Debes esperar 24 horas")
}

func TestScenario_UnrecognizedMakesNoWrites(t *testing.T) {
	store := memstore.New()
	out := &outbox{}
	d, err := NewDispatcher(engineFor(store, time.Now), out)
	require.NoError(t, err)

	d.Handle(context.Background(), Message{From: from, Text: "@silenole hola"})
	d.Handle(context.Background(), Message{From: from, Text: "@silenole ayuda"})

	assert.Equal(t, 0, store.Writes())
	assert.Len(t, out.sent, 2)
	assert.Contains(t, out.sent[0], "Comando no reconocido")
}
