package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/retailboard/store_reports_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	tenantRepo := NewPgxTenantRepository(dbPool)
	operatorRepo := NewPgxOperatorRepository(dbPool)

	return portsrepo.RepositoryProvider{
		Tenant:   tenantRepo,
		Operator: operatorRepo,
	}
}
