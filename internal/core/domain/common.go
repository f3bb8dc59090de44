package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SentinelNeverExpires is the placeholder date the remote POS system stores
// when an expiry was never set. It originates from the remote schema's native
// date type epoch and is treated as "no expiry" throughout the gateway.
var SentinelNeverExpires = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// NeverExpires reports whether the given expiry value means "no expiry":
// either unset (nil) or equal to the remote system's sentinel date.
func NeverExpires(expiry *time.Time) bool {
	if expiry == nil {
		return true
	}
	return expiry.Equal(SentinelNeverExpires)
}
