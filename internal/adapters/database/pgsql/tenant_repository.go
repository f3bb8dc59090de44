package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
	portsrepo "github.com/retailboard/store_reports_app/internal/core/ports/repositories"
	"github.com/retailboard/store_reports_app/internal/models"
	"github.com/retailboard/store_reports_app/internal/utils/mapping"
)

type PgxTenantRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTenantRepository creates a new repository for tenant data.
func NewPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepository {
	return &PgxTenantRepository{pool: pool}
}

// FindTenantByID retrieves a tenant by its opaque provisioning id.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, password, utc_offset_hours, expires_at, created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var tenant models.Tenant
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&tenant.TenantID,
		&tenant.Name,
		&tenant.Password,
		&tenant.UTCOffsetHours,
		&tenant.ExpiresAt,
		&tenant.CreatedAt,
		&tenant.CreatedBy,
		&tenant.LastUpdatedAt,
		&tenant.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Map db not found error to application specific error
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}

	domainTenant := mapping.ToDomainTenant(tenant)
	return &domainTenant, nil
}
