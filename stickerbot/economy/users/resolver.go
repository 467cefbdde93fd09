// Package users maps an external phone identity onto a stored profile.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
)

var ErrEmptyPhone = errors.New("empty phone number")

type Resolver struct {
	users repositories.UserRepository
}

func NewResolver(users repositories.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the profile for phone, creating it on first contact. A
// stored username is never overwritten.
func (r *Resolver) Resolve(ctx context.Context, phone string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrEmptyPhone
	}

	user := &models.User{
		PhoneNumber: phone,
		Username:    DefaultUsername(phone),
		UserType:    config.DefaultUserType,
	}
	if err := r.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to resolve user %s: %w", phone, err)
	}
	return user, nil
}

// DefaultUsername is the prefix followed by the last four characters of phone.
func DefaultUsername(phone string) string {
	suffix := phone
	if runes := []rune(phone); len(runes) > 4 {
		suffix = string(runes[len(runes)-4:])
	}
	return config.DefaultUsernamePrefix + suffix
}
