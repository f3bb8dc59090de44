package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/retailboard/store_reports_app/internal/core/domain"
	portsclients "github.com/retailboard/store_reports_app/internal/core/ports/clients"
	portsrepo "github.com/retailboard/store_reports_app/internal/core/ports/repositories"
	portssvc "github.com/retailboard/store_reports_app/internal/core/ports/services"
	"github.com/retailboard/store_reports_app/internal/utils"
	"github.com/retailboard/store_reports_app/internal/utils/envelope"
)

// operatorService implements the OperatorSvcFacade interface. It bridges the
// two credential stores an operator lives in: the gateway's reversible
// encrypted device password and the remote POS system's salted-hash record.
type operatorService struct {
	BaseService
	tenantRepo   portsrepo.TenantRepository
	operatorRepo portsrepo.OperatorRepository
	server       portsclients.ReportServer
	cipherKey    []byte
	now          func() time.Time
}

// OperatorServiceOption is a functional option for configuring the operator service
type OperatorServiceOption func(*operatorService)

// WithOperatorClock overrides the service clock, used by tests to pin "now"
// for activation date checks.
func WithOperatorClock(now func() time.Time) OperatorServiceOption {
	return func(s *operatorService) {
		s.now = now
	}
}

// NewOperatorService creates a new operator service with the provided options
func NewOperatorService(
	tenantRepo portsrepo.TenantRepository,
	operatorRepo portsrepo.OperatorRepository,
	server portsclients.ReportServer,
	cipherKey []byte,
	options ...OperatorServiceOption,
) portssvc.OperatorSvcFacade {
	svc := &operatorService{
		tenantRepo:   tenantRepo,
		operatorRepo: operatorRepo,
		server:       server,
		cipherKey:    cipherKey,
		now:          time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure operatorService implements the OperatorSvcFacade interface
var _ portssvc.OperatorSvcFacade = (*operatorService)(nil)

// ValidateOperator fetches the remote operator record through the report
// server and checks the submitted identity against it: username match,
// salted-hash match in constant time, and activation date (sentinel and NULL
// both meaning "never expires"). A false result is a legitimate negative, not
// an error.
func (s *operatorService) ValidateOperator(ctx context.Context, tenantID, username, password string) (bool, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("find tenant %s: %w", tenantID, err)
	}

	env, err := envelope.Build(tenant.TenantID, tenant.Password, map[string]string{
		blockOperators: queryOperatorByName,
	}, envelope.Substitutions{
		"USERNAME": envelope.Text(username),
	})
	if err != nil {
		return false, err
	}

	result, err := s.server.Query(ctx, reportOperators, tenant.TenantID, env)
	if err != nil {
		s.LogError(ctx, err, "Remote operator lookup failed",
			slog.String("tenant_id", tenantID),
			slog.String("operator", username))
		return false, err
	}

	rec := firstRecord(result.Block(blockOperators))
	if rec == nil {
		s.LogDebug(ctx, "Operator unknown on remote side",
			slog.String("tenant_id", tenantID),
			slog.String("operator", username))
		return false, nil
	}

	activeUntil, ok := recordTime(rec, "ActiveUntil")
	if !ok {
		// ActiveUntil gates the validation; an unreadable value must not
		// collapse into "never expires".
		s.LogWarn(ctx, "Remote operator record carries unparsable ActiveUntil",
			slog.String("tenant_id", tenantID),
			slog.String("operator", username))
		return false, nil
	}

	remote := domain.RemoteOperatorRecord{
		Username:    recordString(rec, "UserName"),
		SaltedHash:  recordString(rec, "PassHash"),
		ActiveUntil: activeUntil,
	}

	validated := remote.Username == username &&
		utils.VerifySaltedHash(password, remote.SaltedHash) &&
		remote.Active(s.now())

	s.LogInfo(ctx, "Operator validation completed",
		slog.String("tenant_id", tenantID),
		slog.String("operator", username),
		slog.Bool("validated", validated))
	return validated, nil
}

// StoreDevicePassword encrypts the plaintext device password and persists the
// blob for the tenant/username pair.
func (s *operatorService) StoreDevicePassword(ctx context.Context, tenantID, username, password, updatedBy string) error {
	if _, err := s.tenantRepo.FindTenantByID(ctx, tenantID); err != nil {
		return fmt.Errorf("find tenant %s: %w", tenantID, err)
	}

	encrypted, err := utils.EncryptPassword(password, s.cipherKey)
	if err != nil {
		return fmt.Errorf("encrypt device password: %w", err)
	}

	if err := s.operatorRepo.SaveOperatorPassword(ctx, tenantID, username, encrypted, updatedBy); err != nil {
		s.LogError(ctx, err, "Failed to persist device password",
			slog.String("tenant_id", tenantID),
			slog.String("operator", username))
		return fmt.Errorf("save device password: %w", err)
	}

	s.LogInfo(ctx, "Device password stored",
		slog.String("tenant_id", tenantID),
		slog.String("operator", username))
	return nil
}

// DevicePassword decrypts and returns the stored device password.
func (s *operatorService) DevicePassword(ctx context.Context, tenantID, username string) (string, error) {
	operator, err := s.operatorRepo.FindOperatorByUsername(ctx, tenantID, username)
	if err != nil {
		return "", fmt.Errorf("find operator %s: %w", username, err)
	}

	password, err := utils.DecryptPassword(operator.EncryptedPassword, s.cipherKey)
	if err != nil {
		s.LogError(ctx, err, "Stored device password blob is corrupt",
			slog.String("tenant_id", tenantID),
			slog.String("operator", username))
		return "", fmt.Errorf("decrypt device password: %w", err)
	}
	return password, nil
}
