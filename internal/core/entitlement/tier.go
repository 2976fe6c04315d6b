// Package entitlement contains the pure tier resolution used by the stub
// entitlement source and the free-tier fallback used when a fetch fails.
package entitlement

import (
	"unicode/utf16"

	"github.com/example/microdecide/internal/models"
)

// Default daily caps.
const (
	DefaultFreeMaxPerDay    = 1
	DefaultPremiumMaxPerDay = 20
)

// Limits holds the daily caps for each tier.
type Limits struct {
	FreeMaxPerDay    int
	PremiumMaxPerDay int
}

// DefaultLimits returns the built-in caps.
func DefaultLimits() Limits {
	return Limits{
		FreeMaxPerDay:    DefaultFreeMaxPerDay,
		PremiumMaxPerDay: DefaultPremiumMaxPerDay,
	}
}

// Free returns the free-tier entitlements for the given limits.
func Free(limits Limits) models.Entitlements {
	return models.Entitlements{IsPremium: false, MaxPerDay: limits.FreeMaxPerDay}
}

// Premium returns the premium entitlements for the given limits.
func Premium(limits Limits) models.Entitlements {
	return models.Entitlements{IsPremium: true, MaxPerDay: limits.PremiumMaxPerDay}
}

// Resolve maps a user to a tier deterministically. An empty userID is an
// anonymous user and always resolves to free; otherwise users whose hash
// is odd are premium.
func Resolve(userID string, limits Limits) models.Entitlements {
	if userID != "" && HashString(userID)%2 == 1 {
		return Premium(limits)
	}
	return Free(limits)
}

// HashString is a stable string hash over UTF-16 code units:
// h = int32(h) << 5 wrapped to 32 bits, minus h, plus the code unit.
// The intermediate sum is not wrapped, so the result can exceed 32 bits.
// The absolute value is returned.
func HashString(s string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(s)) {
		shifted := int64(int32(uint32(h) << 5))
		h = shifted - h + int64(c)
	}
	if h < 0 {
		return -h
	}
	return h
}
