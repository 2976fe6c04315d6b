package app

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/example/microdecide/internal/core/provider"
	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/primary"
	"github.com/example/microdecide/internal/ports/secondary"
)

// SettingsServiceImpl implements the SettingsService interface.
type SettingsServiceImpl struct {
	mu       sync.Mutex
	slot     stateSlot
	registry *provider.Registry
}

// NewSettingsService creates a new SettingsService over registry.
func NewSettingsService(store secondary.KeyValueStore, registry *provider.Registry, log *logger.Logger) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		slot:     newStateSlot(store, secondary.SettingsKey, log.With("component", "settings")),
		registry: registry,
	}
}

// Providers lists every registered provider with its enablement.
func (s *SettingsServiceImpl) Providers(ctx context.Context) ([]*primary.ProviderInfo, error) {
	enabled := s.EnabledProviders(ctx)
	var infos []*primary.ProviderInfo
	for _, p := range s.registry.Providers() {
		infos = append(infos, &primary.ProviderInfo{
			ID:      p.ID,
			Title:   p.Title,
			Premium: p.Premium,
			Enabled: slices.Contains(enabled, p.ID),
		})
	}
	return infos, nil
}

// EnabledProviders returns the stored enabled ids, or the registry
// defaults when nothing is stored.
func (s *SettingsServiceImpl) EnabledProviders(ctx context.Context) []models.ProviderID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// SetProviderEnabled toggles id and persists the resulting set.
func (s *SettingsServiceImpl) SetProviderEnabled(ctx context.Context, id models.ProviderID, enabled bool) ([]models.ProviderID, error) {
	if _, ok := s.registry.Get(id); !ok {
		return nil, fmt.Errorf("unknown provider %q", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.loadLocked(ctx)
	var next []models.ProviderID
	// Keep registry order so the stored list is stable.
	for _, p := range s.registry.Providers() {
		on := slices.Contains(current, p.ID)
		if p.ID == id {
			on = enabled
		}
		if on {
			next = append(next, p.ID)
		}
	}
	if next == nil {
		next = []models.ProviderID{}
	}

	if err := s.slot.save(ctx, models.ProviderSettings{EnabledProviders: next}); err != nil {
		return nil, err
	}
	return next, nil
}

// Reset removes the stored settings.
func (s *SettingsServiceImpl) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot.remove(ctx)
}

func (s *SettingsServiceImpl) loadLocked(ctx context.Context) []models.ProviderID {
	var stored models.ProviderSettings
	if !s.slot.load(ctx, &stored) || stored.EnabledProviders == nil {
		return s.registry.DefaultEnabled()
	}
	ids := make([]models.ProviderID, 0, len(stored.EnabledProviders))
	for _, id := range stored.EnabledProviders {
		if _, ok := s.registry.Get(id); ok && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Ensure SettingsServiceImpl implements the interface.
var _ primary.SettingsService = (*SettingsServiceImpl)(nil)
