// Package cooldown decides whether a user may open another pack.
package cooldown

import (
	"math"
	"time"

	"github.com/silenole/stickerbot/stickerbot/config"
)

type Eligibility struct {
	Eligible bool
	// HoursRemaining is zero when eligible and at least 1 otherwise.
	HoursRemaining int
}

type Gate struct {
	window time.Duration
}

func NewGate(window time.Duration) *Gate {
	if window <= 0 {
		window = config.PackCooldown
	}
	return &Gate{window: window}
}

func (g *Gate) Window() time.Duration {
	return g.window
}

// CheckEligible compares the last claim with now. A claim in the future is
// treated as having just happened.
func (g *Gate) CheckEligible(lastClaim *time.Time, now time.Time) Eligibility {
	if lastClaim == nil || lastClaim.IsZero() {
		return Eligibility{Eligible: true}
	}

	elapsed := now.Sub(*lastClaim)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= g.window {
		return Eligibility{Eligible: true}
	}

	hours := int(math.Ceil((g.window - elapsed).Hours()))
	if hours < 1 {
		hours = 1
	}
	return Eligibility{HoursRemaining: hours}
}

// ClaimedBefore is the latest previous claim time that still allows a claim at now.
func (g *Gate) ClaimedBefore(now time.Time) time.Time {
	return now.Add(-g.window)
}
