package repositories

// RepositoryProvider holds instances of all the persistence repositories and
// is handed to the service layer during wiring.
type RepositoryProvider struct {
	Tenant   TenantRepository
	Operator OperatorRepository
}
