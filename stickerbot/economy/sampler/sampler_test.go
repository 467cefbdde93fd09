package sampler

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silenole/stickerbot/stickerbot/database/models"
)

func catalog() []*models.Sticker {
	return []*models.Sticker{
		{ID: 1, PlayerName: "Pedri", Rarity: "common"},
		{ID: 2, PlayerName: "Gavi", Rarity: "rare"},
		{ID: 3, PlayerName: "Rodri", Rarity: "epic"},
		{ID: 4, PlayerName: "Lamine", Rarity: "legendary"},
	}
}

func TestDraw_ReturnsCatalogMember(t *testing.T) {
	s := New(WithSource(rand.NewSource(1)))
	items := catalog()

	for i := 0; i < 200; i++ {
		id, err := s.Draw(items)
		require.NoError(t, err)
		assert.Contains(t, []int64{1, 2, 3, 4}, id)
	}
}

func TestDraw_EmptyCatalog(t *testing.T) {
	s := New()

	_, err := s.Draw(nil)
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = s.DrawN([]*models.Sticker{}, 5)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestDraw_ZeroTotalWeight(t *testing.T) {
	s := New(WithWeights(WeightTable{Common: 0, Rare: 0, Epic: 0, Legendary: 0}))

	_, err := s.Draw(catalog())
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestDraw_SingleItem(t *testing.T) {
	s := New(WithSource(rand.NewSource(7)))
	only := []*models.Sticker{{ID: 42, Rarity: "legendary"}}

	ids, err := s.DrawN(only, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{42, 42, 42, 42, 42}, ids)
}

func TestDrawN_Count(t *testing.T) {
	s := New(WithSource(rand.NewSource(3)))

	ids, err := s.DrawN(catalog(), 5)
	require.NoError(t, err)
	assert.Len(t, ids, 5)
}

func TestDraw_FrequenciesFollowWeights(t *testing.T) {
	s := New(WithSource(rand.NewSource(42)))
	items := catalog()

	const draws = 100000
	counts := make(map[int64]int)
	ids, err := s.DrawN(items, draws)
	require.NoError(t, err)
	for _, id := range ids {
		counts[id]++
	}

	expected := map[int64]float64{1: 0.70, 2: 0.20, 3: 0.08, 4: 0.02}
	for id, want := range expected {
		got := float64(counts[id]) / draws
		assert.InDelta(t, want, got, 0.01, "sticker %d", id)
	}
}

func TestDraw_UnknownRarityCountsAsCommon(t *testing.T) {
	s := New(WithSource(rand.NewSource(9)))
	items := []*models.Sticker{
		{ID: 1, Rarity: "mythic"},
		{ID: 2, Rarity: "legendary"},
	}

	const draws = 20000
	ids, err := s.DrawN(items, draws)
	require.NoError(t, err)

	mythic := 0
	for _, id := range ids {
		if id == 1 {
			mythic++
		}
	}
	// 70 vs 2
	assert.InDelta(t, 70.0/72.0, float64(mythic)/draws, 0.01)
}

func TestDraw_ConcurrentUse(t *testing.T) {
	s := New()
	items := catalog()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := s.Draw(items)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestWeightsFromConfig(t *testing.T) {
	table := WeightsFromConfig(map[string]int{"Rare": 30, "legendary": -1, "mythic": 99})

	assert.Equal(t, 70, table[Common])
	assert.Equal(t, 30, table[Rare])
	assert.Equal(t, 0, table[Legendary])
	_, ok := table[Rarity("mythic")]
	assert.False(t, ok)
}

func TestParseRarity(t *testing.T) {
	assert.Equal(t, Epic, ParseRarity(" EPIC "))
	assert.Equal(t, Common, ParseRarity(""))
	assert.Equal(t, Common, ParseRarity("gold"))
	assert.Equal(t, "🟠", Legendary.Emoji())
}
