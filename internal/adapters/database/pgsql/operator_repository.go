package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
	portsrepo "github.com/retailboard/store_reports_app/internal/core/ports/repositories"
	"github.com/retailboard/store_reports_app/internal/models"
	"github.com/retailboard/store_reports_app/internal/utils/mapping"
)

type PgxOperatorRepository struct {
	pool *pgxpool.Pool
}

// NewPgxOperatorRepository creates a new repository for gateway-side operator credentials.
func NewPgxOperatorRepository(pool *pgxpool.Pool) portsrepo.OperatorRepository {
	return &PgxOperatorRepository{pool: pool}
}

// FindOperatorByUsername retrieves the stored operator credential for a tenant.
func (r *PgxOperatorRepository) FindOperatorByUsername(ctx context.Context, tenantID, username string) (*domain.Operator, error) {
	query := `
		SELECT tenant_id, username, encrypted_password, active_until, created_at, created_by, last_updated_at, last_updated_by
		FROM operators
		WHERE tenant_id = $1 AND username = $2;
	`
	var operator models.Operator
	err := r.pool.QueryRow(ctx, query, tenantID, username).Scan(
		&operator.TenantID,
		&operator.Username,
		&operator.EncryptedPassword,
		&operator.ActiveUntil,
		&operator.CreatedAt,
		&operator.CreatedBy,
		&operator.LastUpdatedAt,
		&operator.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Map db not found error to application specific error
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find operator %s for tenant %s: %w", username, tenantID, err)
	}

	domainOperator := mapping.ToDomainOperator(operator)
	return &domainOperator, nil
}

// SaveOperatorPassword upserts the encrypted device password blob for a
// tenant/username pair.
func (r *PgxOperatorRepository) SaveOperatorPassword(ctx context.Context, tenantID, username, encryptedPassword, updatedBy string) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO operators (tenant_id, username, encrypted_password, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, username) DO UPDATE SET
			encrypted_password = EXCLUDED.encrypted_password,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.pool.Exec(ctx, query,
		tenantID,
		username,
		encryptedPassword,
		now,       // created_at
		updatedBy, // created_by
		now,       // last_updated_at
		updatedBy, // last_updated_by
	)

	if err != nil {
		return fmt.Errorf("failed to save operator password for %s: %w", username, err)
	}
	return nil
}
