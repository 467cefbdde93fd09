package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Sticker is catalog reference data. The bot only reads it.
type Sticker struct {
	bun.BaseModel `bun:"table:stickers,alias:s"`

	ID         int64     `bun:"id,pk" toml:"id"`
	PlayerName string    `bun:"player_name,notnull" toml:"player_name"`
	Team       string    `bun:"team,notnull,default:''" toml:"team"`
	Rarity     string    `bun:"rarity,notnull,default:'common'" toml:"rarity"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" toml:"-"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp" toml:"-"`
}
