package repositories

import (
	"context"

	"github.com/retailboard/store_reports_app/internal/core/domain"
)

// TenantRepository reads tenants ("objects") provisioned by the external
// onboarding flow. The gateway never writes tenants.
type TenantRepository interface {
	// FindTenantByID returns the tenant with the given ID, or
	// apperrors.ErrNotFound when it does not exist.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}
