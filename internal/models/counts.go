package models

// Counts tracks how many decisions were generated on a local calendar day.
type Counts struct {
	DateKey   string `json:"dateKey"` // YYYY-MM-DD
	Generated int    `json:"generated"`
}

// Entitlements is the user's tier and daily generation cap.
type Entitlements struct {
	IsPremium bool `json:"isPremium"`
	MaxPerDay int  `json:"maxPerDay"`
}

// Tier returns a display label for the entitlement tier.
func (e Entitlements) Tier() string {
	if e.IsPremium {
		return "Premium"
	}
	return "Free"
}
