package services

import (
	portsclients "github.com/retailboard/store_reports_app/internal/core/ports/clients"
	portsrepo "github.com/retailboard/store_reports_app/internal/core/ports/repositories"
	portssvc "github.com/retailboard/store_reports_app/internal/core/ports/services"
)

// NewServiceContainer wires all application services and returns the
// container handed to the handler layer. The operator service doubles as the
// credential bridge gating the report service's mutating operations.
func NewServiceContainer(
	repos *portsrepo.RepositoryProvider,
	server portsclients.ReportServer,
	cipherKey []byte,
) *portssvc.ServiceContainer {
	operatorSvc := NewOperatorService(repos.Tenant, repos.Operator, server, cipherKey)
	reportSvc := NewReportService(repos.Tenant, server,
		WithOperatorValidator(operatorSvc),
	)

	return &portssvc.ServiceContainer{
		Report:   reportSvc,
		Operator: operatorSvc,
	}
}
