package sampler

import (
	"strings"

	"github.com/silenole/stickerbot/stickerbot/config"
)

type Rarity string

const (
	Common    Rarity = "common"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
)

// Tiers lists the rarities from most to least frequent.
var Tiers = []Rarity{Common, Rare, Epic, Legendary}

// ParseRarity normalizes a stored rarity. Anything unknown counts as common.
func ParseRarity(s string) Rarity {
	switch r := Rarity(strings.ToLower(strings.TrimSpace(s))); r {
	case Common, Rare, Epic, Legendary:
		return r
	default:
		return Common
	}
}

// WeightTable maps a rarity to its relative draw weight.
type WeightTable map[Rarity]int

func DefaultWeights() WeightTable {
	return WeightTable{
		Common:    config.CommonWeight,
		Rare:      config.RareWeight,
		Epic:      config.EpicWeight,
		Legendary: config.LegendaryWeight,
	}
}

// WeightsFromConfig overlays configured weights on the defaults. Negative
// values are treated as zero.
func WeightsFromConfig(raw map[string]int) WeightTable {
	table := DefaultWeights()
	for name, w := range raw {
		r := Rarity(strings.ToLower(strings.TrimSpace(name)))
		if _, known := table[r]; !known {
			continue
		}
		if w < 0 {
			w = 0
		}
		table[r] = w
	}
	return table
}

// Weight returns the weight for a stored rarity string.
func (t WeightTable) Weight(rarity string) int {
	return t[ParseRarity(rarity)]
}

// Emoji is the marker shown next to a sticker in chat.
func (r Rarity) Emoji() string {
	switch r {
	case Legendary:
		return config.LegendaryEmoji
	case Epic:
		return config.EpicEmoji
	case Rare:
		return config.RareEmoji
	default:
		return config.CommonEmoji
	}
}
