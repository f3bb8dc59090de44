package reportsrv

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/retailboard/store_reports_app/internal/core/domain"
	portsclients "github.com/retailboard/store_reports_app/internal/core/ports/clients"
	"github.com/viccon/sturdyc"
)

const cacheShards = 16

// CachedReportServer serves repeated identical queries from an in-process
// sturdyc cache. Only Query results are cached; Execute mutates the remote
// side and always dispatches. Errors are never stored, so a transient
// transport failure is retried on the next call.
type CachedReportServer struct {
	inner portsclients.ReportServer
	cache *sturdyc.Client[domain.ReportResult]
}

// NewCachedReportServer wraps a report server with a read cache of the given
// capacity and entry TTL.
func NewCachedReportServer(inner portsclients.ReportServer, capacity int, ttl time.Duration) *CachedReportServer {
	return &CachedReportServer{
		inner: inner,
		cache: sturdyc.New[domain.ReportResult](capacity, cacheShards, ttl, 10),
	}
}

var _ portsclients.ReportServer = (*CachedReportServer)(nil)

// Query serves the report from cache when an identical envelope was
// dispatched recently, otherwise fetches through the wrapped client.
func (s *CachedReportServer) Query(ctx context.Context, reportName, tenantID string, env domain.Envelope) (domain.ReportResult, error) {
	return s.cache.GetOrFetch(ctx, cacheKey(reportName, tenantID, env), func(ctx context.Context) (domain.ReportResult, error) {
		return s.inner.Query(ctx, reportName, tenantID, env)
	})
}

// Execute always dispatches; mutations must reach the remote side.
func (s *CachedReportServer) Execute(ctx context.Context, reportName, tenantID string, env domain.Envelope) (domain.ReportResult, error) {
	return s.inner.Execute(ctx, reportName, tenantID, env)
}

// cacheKey hashes the full request identity: report name, tenant and the
// serialized envelope (window bounds live inside the SQL text, so they are
// covered).
func cacheKey(reportName, tenantID string, env domain.Envelope) string {
	h := sha256.New()
	h.Write([]byte(reportName))
	h.Write([]byte{0})
	h.Write([]byte(tenantID))
	h.Write([]byte{0})
	if body, err := json.Marshal(env); err == nil {
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}
