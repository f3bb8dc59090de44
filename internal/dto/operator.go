package dto

// OperatorLogin is an operator's submitted identity for gating privileged
// writes.
type OperatorLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ValidateOperatorRequest asks the gateway to confirm an operator against the
// remote POS record.
type ValidateOperatorRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ValidateOperatorResponse reports the validation outcome. A false result is
// a legitimate negative, not an error.
type ValidateOperatorResponse struct {
	Validated bool `json:"validated"`
}

// StoreDevicePasswordRequest stores a per-device operator password encrypted
// at rest.
type StoreDevicePasswordRequest struct {
	Password  string `json:"password" binding:"required"`
	UpdatedBy string `json:"updatedBy"`
}
