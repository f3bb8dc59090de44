package domain

import "time"

// Operator is a named user with edit privileges on POS-side data. The same
// operator is stored twice, in different forms: the gateway keeps a reversible
// encrypted device password, while the remote POS system keeps a salted hash.
// Both must agree before a privileged write is allowed.
type Operator struct {
	TenantID string `json:"tenantID"`
	Username string `json:"username"`
	// EncryptedPassword is the base64 AES-CBC blob persisted by the gateway
	// (IV prepended, see utils.EncryptPassword).
	EncryptedPassword string     `json:"-"`
	ActiveUntil       *time.Time `json:"activeUntil,omitempty"`
	AuditFields
}

// Active reports whether the operator may act at the given instant. An unset
// ActiveUntil and the remote sentinel date both mean the operator never
// expires.
func (o Operator) Active(now time.Time) bool {
	if NeverExpires(o.ActiveUntil) {
		return true
	}
	return !o.ActiveUntil.Before(now)
}

// RemoteOperatorRecord is the operator row as the remote POS system returns
// it: the password is a salted one-way hash, not reversible.
type RemoteOperatorRecord struct {
	Username   string
	SaltedHash string
	// ActiveUntil is nil when the remote column was NULL; the sentinel date
	// 1899-12-30 arrives as a concrete value and is special-cased by Active.
	ActiveUntil *time.Time
}

// Active mirrors Operator.Active for the remote record's activation date.
func (r RemoteOperatorRecord) Active(now time.Time) bool {
	if NeverExpires(r.ActiveUntil) {
		return true
	}
	return !r.ActiveUntil.Before(now)
}
