package services

import "context"

// OperatorSvcFacade is the credential bridge: it reconciles the gateway's
// encrypted device password with the remote POS system's salted-hash record.
type OperatorSvcFacade interface {
	// ValidateOperator checks the submitted identity against the remote
	// operator record. A false result with a nil error is a legitimate
	// negative outcome; errors are reserved for transport, parse and domain
	// failures while fetching the remote record.
	ValidateOperator(ctx context.Context, tenantID, username, password string) (bool, error)

	// StoreDevicePassword encrypts the plaintext device password and persists
	// the blob for the tenant/username pair.
	StoreDevicePassword(ctx context.Context, tenantID, username, password, updatedBy string) error

	// DevicePassword decrypts and returns the stored device password.
	DevicePassword(ctx context.Context, tenantID, username string) (string, error)
}
