// Package provider holds the fixed registry of decision providers and the
// seeded selection of the next decision.
package provider

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/example/microdecide/internal/core/rng"
	"github.com/example/microdecide/internal/models"
)

// ErrNoProviders is returned when a registry has no providers at all.
var ErrNoProviders = errors.New("no decision providers registered")

// Provider is a static descriptor of one decision category.
type Provider struct {
	ID                 models.ProviderID
	Title              string
	Premium            bool
	IsEnabledByDefault bool
	Generate           GenerateFunc
}

// Registry is an ordered, immutable list of providers.
type Registry struct {
	providers []Provider
	now       func() time.Time
}

// DefaultProviders returns the built-in provider list in display order.
func DefaultProviders() []Provider {
	return []Provider{
		{
			ID:                 models.ProviderEmailUnsub,
			Title:              "Email Unsubscribe",
			Premium:            false,
			IsEnabledByDefault: true,
			Generate:           generateEmailUnsub,
		},
		{
			ID:                 models.ProviderPhotoDupes,
			Title:              "Photo Duplicates",
			Premium:            false,
			IsEnabledByDefault: true,
			Generate:           generatePhotoDupes,
		},
		{
			ID:                 models.ProviderWorkout,
			Title:              "5-Min Workout",
			Premium:            true,
			IsEnabledByDefault: true,
			Generate:           generateWorkout,
		},
	}
}

// NewRegistry creates a registry over providers. now stamps CreatedAt on
// generated decisions; nil means time.Now.
func NewRegistry(providers []Provider, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		providers: slices.Clone(providers),
		now:       now,
	}
}

// Default returns the registry of built-in providers using the wall clock.
func Default() *Registry {
	return NewRegistry(DefaultProviders(), nil)
}

// Providers returns a copy of the registered providers in order.
func (r *Registry) Providers() []Provider {
	return slices.Clone(r.providers)
}

// Get returns the provider with the given id.
func (r *Registry) Get(id models.ProviderID) (Provider, bool) {
	i := slices.IndexFunc(r.providers, func(p Provider) bool { return p.ID == id })
	if i < 0 {
		return Provider{}, false
	}
	return r.providers[i], true
}

// DefaultEnabled returns the ids of providers enabled by default.
func (r *Registry) DefaultEnabled() []models.ProviderID {
	var ids []models.ProviderID
	for _, p := range r.providers {
		if p.IsEnabledByDefault {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Generate runs a single provider's generator for seed.
func (r *Registry) Generate(id models.ProviderID, seed int64) (models.Decision, error) {
	p, ok := r.Get(id)
	if !ok {
		return models.Decision{}, fmt.Errorf("unknown provider %q", id)
	}
	return p.Generate(seed, r.now().UnixMilli()), nil
}

// Candidates returns the providers that are enabled and available to the
// tier, in registry order.
func (r *Registry) Candidates(enabled []models.ProviderID, isPremium bool) []Provider {
	var out []Provider
	for _, p := range r.providers {
		if slices.Contains(enabled, p.ID) && (isPremium || !p.Premium) {
			out = append(out, p)
		}
	}
	return out
}

// free returns the non-premium providers, or every provider when the
// registry has no free ones.
func (r *Registry) free() []Provider {
	var out []Provider
	for _, p := range r.providers {
		if !p.Premium {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return slices.Clone(r.providers)
	}
	return out
}

// PickNextDecision selects a provider for seed and generates its decision.
// An empty candidate set falls back to the free providers, so a decision is
// always produced while any provider exists. Selection uses the first draw
// of rng.New(seed) and the generator is seeded with the same seed.
func (r *Registry) PickNextDecision(seed int64, enabled []models.ProviderID, isPremium bool) (models.Decision, error) {
	if len(r.providers) == 0 {
		return models.Decision{}, ErrNoProviders
	}

	candidates := r.Candidates(enabled, isPremium)
	if len(candidates) == 0 {
		candidates = r.free()
	}

	chosen := candidates[rng.New(seed).Intn(len(candidates))]
	return chosen.Generate(seed, r.now().UnixMilli()), nil
}
