package clients

import (
	"context"

	"github.com/retailboard/store_reports_app/internal/core/domain"
)

// ReportServer is the outbound port to the remote report server. Query is a
// pure read and may be served from a transparent cache; Execute carries a
// mutating effect on the remote side and is always dispatched.
//
// Both return the interpreted result on success. Failures surface as
// apperrors.ErrTransport (unreachable), apperrors.ErrParse (contract
// violation) or *apperrors.DomainError (the server executed and reported a
// non-zero result code) so callers never conflate "server unreachable" with
// "server said error code N".
type ReportServer interface {
	Query(ctx context.Context, reportName, tenantID string, env domain.Envelope) (domain.ReportResult, error)
	Execute(ctx context.Context, reportName, tenantID string, env domain.Envelope) (domain.ReportResult, error)
}
