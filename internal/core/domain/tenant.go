package domain

import "time"

// Tenant represents one retail site ("object"): the data scope every report
// query runs against. Tenants are provisioned externally; the gateway only
// reads them.
type Tenant struct {
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	// Password is the opaque credential the report server expects in the
	// envelope's Pass field. It is stored as provisioned, never interpreted.
	Password string `json:"-"`
	// UTCOffsetHours is the tenant's whole-hour offset from UTC. It is applied
	// to every time-windowed query so the tenant's local midnight maps onto
	// the UTC timestamps the report server stores.
	UTCOffsetHours int        `json:"utcOffsetHours"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	AuditFields
}

// Expired reports whether the tenant's subscription has run out at the given
// instant. The remote sentinel date and an unset expiry both mean the tenant
// never expires.
func (t Tenant) Expired(now time.Time) bool {
	if NeverExpires(t.ExpiresAt) {
		return false
	}
	return t.ExpiresAt.Before(now)
}
