package models

import "time"

// Operator represents the gateway-side operator credential row: the
// reversible encrypted device password, keyed by tenant and username.
type Operator struct {
	TenantID          string     `json:"tenantID"` // Composite Key with Username
	Username          string     `json:"username"`
	EncryptedPassword string     `json:"-"` // base64 AES-CBC blob
	ActiveUntil       *time.Time `json:"activeUntil,omitempty"`
	AuditFields
}
