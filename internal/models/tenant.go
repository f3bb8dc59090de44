package models

import "time"

// Tenant represents a provisioned retail site ("object") row.
type Tenant struct {
	TenantID       string     `json:"tenantID"` // Primary Key (opaque id from provisioning)
	Name           string     `json:"name"`
	Password       string     `json:"-"`              // report server credential, stored opaque
	UTCOffsetHours int        `json:"utcOffsetHours"` // whole hours from UTC
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	AuditFields
}
