package mapping

import (
	"github.com/retailboard/store_reports_app/internal/core/domain"
	"github.com/retailboard/store_reports_app/internal/models"
)

// ToDomainOperator converts a model Operator to a domain Operator
func ToDomainOperator(m models.Operator) domain.Operator {
	return domain.Operator{
		TenantID:          m.TenantID,
		Username:          m.Username,
		EncryptedPassword: m.EncryptedPassword,
		ActiveUntil:       m.ActiveUntil,
		AuditFields:       toDomainAuditFields(m.AuditFields),
	}
}
