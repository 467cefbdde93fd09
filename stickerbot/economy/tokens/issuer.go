// Package tokens issues the short-lived links that open a user's album on
// the web site.
package tokens

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
)

type Token struct {
	Value     string
	URL       string
	ExpiresAt time.Time
}

type Issuer struct {
	links   repositories.MagicLinkRepository
	baseURL string
	ttl     time.Duration
	newID   func() (uuid.UUID, error)
}

func NewIssuer(links repositories.MagicLinkRepository, baseURL string, ttl time.Duration) *Issuer {
	if baseURL == "" {
		baseURL = config.DefaultAlbumURL
	}
	if ttl <= 0 {
		ttl = config.AccessTokenTTL
	}
	return &Issuer{
		links:   links,
		baseURL: baseURL,
		ttl:     ttl,
		newID:   uuid.NewRandom,
	}
}

// Issue persists a new link for user, valid until now plus the TTL. Single
// use and expiry are enforced by the album site.
func (i *Issuer) Issue(ctx context.Context, user *models.User, now time.Time) (*Token, error) {
	id, err := i.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	link := &models.MagicLink{
		Token:     id.String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(i.ttl),
		CreatedAt: now,
	}
	if err := i.links.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to store album link: %w", err)
	}

	return &Token{
		Value:     link.Token,
		URL:       i.linkURL(link.Token),
		ExpiresAt: link.ExpiresAt,
	}, nil
}

func (i *Issuer) linkURL(token string) string {
	u, err := url.Parse(i.baseURL)
	if err != nil {
		return i.baseURL + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
