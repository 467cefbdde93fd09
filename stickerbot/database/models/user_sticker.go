package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserSticker is one inventory line; (user_id, sticker_id) is unique.
type UserSticker struct {
	bun.BaseModel `bun:"table:user_stickers,alias:us"`

	ID        int64 `bun:"id,pk,autoincrement"`
	UserID    int64 `bun:"user_id,notnull,unique:user_sticker"`
	StickerID int64 `bun:"sticker_id,notnull,unique:user_sticker"`
	Quantity  int   `bun:"quantity,notnull,default:1"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
