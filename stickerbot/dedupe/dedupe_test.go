package dedupe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Seen(t *testing.T) {
	m, err := NewMemory(16, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	seen, err := m.Seen(ctx, "wamid.A")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, _ = m.Seen(ctx, "wamid.A")
	assert.True(t, seen)

	seen, _ = m.Seen(ctx, "wamid.B")
	assert.False(t, seen)
}

func TestMemory_WindowExpires(t *testing.T) {
	m, err := NewMemory(16, time.Minute)
	require.NoError(t, err)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	seen, _ := m.Seen(context.Background(), "wamid.A")
	assert.False(t, seen)

	now = now.Add(2 * time.Minute)
	seen, _ = m.Seen(context.Background(), "wamid.A")
	assert.False(t, seen)
}

func TestMemory_Evicts(t *testing.T) {
	m, err := NewMemory(2, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, _ = m.Seen(ctx, id)
	}
	seen, _ := m.Seen(ctx, "a")
	assert.False(t, seen)
}

func TestNew_EmptyURLUsesMemory(t *testing.T) {
	d, err := New("", 0)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, d)
	assert.NoError(t, d.Close())
}

func TestRedis_FallsBackWhenUnreachable(t *testing.T) {
	d, err := NewRedis("redis://127.0.0.1:1/0?dial_timeout=100ms", time.Hour)
	require.NoError(t, err)
	defer d.Close()
	ctx := context.Background()

	seen, err := d.Seen(ctx, "wamid.A")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = d.Seen(ctx, "wamid.A")
	require.NoError(t, err)
	assert.True(t, seen)

	assert.Error(t, d.Ping(ctx))
}

func TestNewRedis_InvalidURL(t *testing.T) {
	_, err := NewRedis("not a url", time.Hour)
	assert.Error(t, err)
}
