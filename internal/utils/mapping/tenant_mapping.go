package mapping

import (
	"github.com/retailboard/store_reports_app/internal/core/domain"
	"github.com/retailboard/store_reports_app/internal/models"
)

// ToDomainTenant converts a model Tenant to a domain Tenant
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:       m.TenantID,
		Name:           m.Name,
		Password:       m.Password,
		UTCOffsetHours: m.UTCOffsetHours,
		ExpiresAt:      m.ExpiresAt,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}

func toDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}
