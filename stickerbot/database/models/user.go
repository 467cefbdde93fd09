package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`

	ID               int64      `bun:"id,pk,autoincrement"`
	PhoneNumber      string     `bun:"phone_number,notnull,unique"`
	Username         string     `bun:"username,notnull"`
	UserType         string     `bun:"user_type,notnull,default:'whatsapp'"`
	LastPackOpenedAt *time.Time `bun:"last_pack_opened_at,nullzero"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// HasClaimedPack reports whether the user ever opened a pack.
func (u *User) HasClaimedPack() bool {
	return u.LastPackOpenedAt != nil && !u.LastPackOpenedAt.IsZero()
}
