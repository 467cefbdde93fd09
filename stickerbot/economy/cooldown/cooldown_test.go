package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckEligible(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	tests := []struct {
		name      string
		lastClaim *time.Time
		want      Eligibility
	}{
		{name: "never claimed", lastClaim: nil, want: Eligibility{Eligible: true}},
		{name: "zero time", lastClaim: &time.Time{}, want: Eligibility{Eligible: true}},
		{name: "exactly one window ago", lastClaim: at(-24 * time.Hour), want: Eligibility{Eligible: true}},
		{name: "two days ago", lastClaim: at(-48 * time.Hour), want: Eligibility{Eligible: true}},
		{name: "just claimed", lastClaim: at(0), want: Eligibility{HoursRemaining: 24}},
		{name: "one second ago", lastClaim: at(-time.Second), want: Eligibility{HoursRemaining: 24}},
		{name: "ten hours ago", lastClaim: at(-10 * time.Hour), want: Eligibility{HoursRemaining: 14}},
		{name: "ten and a half hours ago", lastClaim: at(-10*time.Hour - 30*time.Minute), want: Eligibility{HoursRemaining: 14}},
		{name: "one minute left", lastClaim: at(-24*time.Hour + time.Minute), want: Eligibility{HoursRemaining: 1}},
		{name: "claim in the future", lastClaim: at(3 * time.Hour), want: Eligibility{HoursRemaining: 24}},
	}

	gate := NewGate(24 * time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.CheckEligible(tt.lastClaim, now))
		})
	}
}

func TestNewGate_DefaultWindow(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewGate(0).Window())
}

func TestClaimedBefore(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	gate := NewGate(24 * time.Hour)

	before := gate.ClaimedBefore(now)
	assert.Equal(t, now.Add(-24*time.Hour), before)
	assert.True(t, gate.CheckEligible(&before, now).Eligible)
}
