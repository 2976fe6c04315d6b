package app

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/example/microdecide/internal/core/entitlement"
	"github.com/example/microdecide/internal/logger"
	"github.com/example/microdecide/internal/models"
	"github.com/example/microdecide/internal/ports/primary"
	"github.com/example/microdecide/internal/ports/secondary"
)

// EntitlementServiceImpl implements the EntitlementService interface.
// Concurrent lookups for the same user share one source call.
type EntitlementServiceImpl struct {
	source  secondary.EntitlementSource
	limits  entitlement.Limits
	timeout time.Duration
	log     *logger.Logger
	group   singleflight.Group
}

// NewEntitlementService creates a new EntitlementService. Lookups ignore
// the caller's cancellation and deadline; a zero timeout leaves them
// unbounded.
func NewEntitlementService(source secondary.EntitlementSource, limits entitlement.Limits, timeout time.Duration, log *logger.Logger) *EntitlementServiceImpl {
	return &EntitlementServiceImpl{
		source:  source,
		limits:  limits,
		timeout: timeout,
		log:     log.With("component", "entitlement"),
	}
}

// FetchEntitlements resolves userID's tier, falling back to free.
func (s *EntitlementServiceImpl) FetchEntitlements(ctx context.Context, userID string) models.Entitlements {
	if s.source == nil {
		return entitlement.Free(s.limits)
	}

	// The shared call outlives any single caller's cancellation; the
	// timeout still bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(userID, func() (any, error) {
		if s.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, s.timeout)
			defer cancel()
		}
		return s.source.Fetch(fetchCtx, userID)
	})
	if err != nil {
		s.log.Warn("entitlement lookup failed, using free tier", "user_id", userID, "error", err)
		return entitlement.Free(s.limits)
	}

	ent := v.(models.Entitlements)
	if ent.MaxPerDay < 0 {
		s.log.Warn("entitlement source returned a negative limit, using free tier", "user_id", userID)
		return entitlement.Free(s.limits)
	}
	return ent
}

// Ensure EntitlementServiceImpl implements the interface.
var _ primary.EntitlementService = (*EntitlementServiceImpl)(nil)
