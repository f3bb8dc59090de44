package repositories

import (
	"context"

	"github.com/retailboard/store_reports_app/internal/core/domain"
)

// OperatorRepository persists the gateway-side half of an operator's
// credentials: the reversible encrypted device password. The remote POS
// system keeps its own salted-hash record, fetched through the report server.
type OperatorRepository interface {
	// FindOperatorByUsername returns the stored operator for a tenant, or
	// apperrors.ErrNotFound when none exists.
	FindOperatorByUsername(ctx context.Context, tenantID, username string) (*domain.Operator, error)

	// SaveOperatorPassword upserts the encrypted device password blob for the
	// given tenant and username.
	SaveOperatorPassword(ctx context.Context, tenantID, username, encryptedPassword, updatedBy string) error
}
