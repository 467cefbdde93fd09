package sampler

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/silenole/stickerbot/stickerbot/database/models"
)

// ErrNoItems is returned when nothing in the catalog can be drawn.
var ErrNoItems = errors.New("no drawable stickers in catalog")

// Sampler picks catalog stickers with probability proportional to the weight
// of their rarity. A sticker of weight w is w times as likely as one of weight 1.
type Sampler struct {
	weights WeightTable

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Sampler)

// WithSource replaces the random source, mostly for tests.
func WithSource(src rand.Source) Option {
	return func(s *Sampler) {
		s.rng = rand.New(src)
	}
}

func WithWeights(weights WeightTable) Option {
	return func(s *Sampler) {
		if len(weights) > 0 {
			s.weights = weights
		}
	}
}

func New(opts ...Option) *Sampler {
	s := &Sampler{
		weights: DefaultWeights(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sampler) Weights() WeightTable {
	return s.weights
}

func (s *Sampler) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Draw returns the id of one sticker.
func (s *Sampler) Draw(catalog []*models.Sticker) (int64, error) {
	total := s.totalWeight(catalog)
	if total <= 0 {
		return 0, ErrNoItems
	}
	return s.pick(catalog, s.intn(total)), nil
}

// DrawN performs n independent draws with replacement.
func (s *Sampler) DrawN(catalog []*models.Sticker, n int) ([]int64, error) {
	total := s.totalWeight(catalog)
	if total <= 0 {
		return nil, ErrNoItems
	}

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, s.pick(catalog, s.intn(total)))
	}
	return ids, nil
}

func (s *Sampler) totalWeight(catalog []*models.Sticker) int {
	total := 0
	for _, st := range catalog {
		if st == nil {
			continue
		}
		total += s.weights.Weight(st.Rarity)
	}
	return total
}

func (s *Sampler) pick(catalog []*models.Sticker, roll int) int64 {
	current := 0
	var last int64
	for _, st := range catalog {
		if st == nil {
			continue
		}
		w := s.weights.Weight(st.Rarity)
		if w <= 0 {
			continue
		}
		current += w
		last = st.ID
		if roll < current {
			return st.ID
		}
	}
	return last
}
