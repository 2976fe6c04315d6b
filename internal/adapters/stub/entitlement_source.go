// Package stub contains stand-in adapters for services MicroDecide does not
// integrate with yet.
package stub

import (
	"context"
	"time"

	"github.com/example/microdecide/internal/core/entitlement"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/secondary"
)

// EntitlementSource implements secondary.EntitlementSource by hashing the
// user id. It stands in for a billing backend.
type EntitlementSource struct {
	limits  entitlement.Limits
	latency time.Duration
}

// NewEntitlementSource creates a stub source. latency simulates a remote
// round trip and is honored against the context deadline.
func NewEntitlementSource(limits entitlement.Limits, latency time.Duration) *EntitlementSource {
	return &EntitlementSource{limits: limits, latency: latency}
}

// Fetch resolves userID's tier.
func (s *EntitlementSource) Fetch(ctx context.Context, userID string) (models.Entitlements, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return models.Entitlements{}, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return models.Entitlements{}, err
	}
	return entitlement.Resolve(userID, s.limits), nil
}

// Ensure EntitlementSource implements the interface
var _ secondary.EntitlementSource = (*EntitlementSource)(nil)
