package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MagicLink grants a short-lived, single-use view of a user's album.
// Redemption (UsedAt) is handled by the album site.
type MagicLink struct {
	bun.BaseModel `bun:"table:magic_links,alias:ml"`

	Token     string     `bun:"token,pk"`
	UserID    int64      `bun:"user_id,notnull"`
	ExpiresAt time.Time  `bun:"expires_at,notnull"`
	UsedAt    *time.Time `bun:"used_at,nullzero"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}
