package reportsrv

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientFor(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return NewClient(u.Hostname(), port, "gw-user", "gw-pass", 5*time.Second)
}

func testEnvelope() domain.Envelope {
	return domain.Envelope{
		TenantID:   "obj-7",
		TenantPass: "tenant-pw",
		Blocks: map[string]domain.QueryBlock{
			"CurrentTurnover": {Type: domain.QueryBlockType, SQL: "SELECT 1"},
		},
	}
}

func TestClient_QueryDispatchesGetWithEnvelopeBody(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotQuery url.Values
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"ResultCode":0,"CurrentTurnover":[{"Total":125.5}]}`))
	}))
	defer srv.Close()

	result, err := clientFor(t, srv).Query(context.Background(), "turnover_day", "obj-7", testEnvelope())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/report/turnover_day/", gotPath)
	assert.Equal(t, "obj-7", gotQuery.Get("id"))
	assert.Equal(t, "gw-user", gotQuery.Get("u"))
	assert.Equal(t, "gw-pass", gotQuery.Get("p"))
	assert.Equal(t, "application/json", gotContentType)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &wire))
	assert.Equal(t, "obj-7", wire["Id"])
	assert.Equal(t, "tenant-pw", wire["Pass"])

	require.Len(t, result.Block("CurrentTurnover"), 1)
}

func TestClient_ExecuteDispatchesPost(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"ResultCode":0}`))
	}))
	defer srv.Close()

	_, err := clientFor(t, srv).Execute(context.Background(), "promo_save", "obj-7", testEnvelope())
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestClient_UnreachableServerIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := clientFor(t, srv).Query(context.Background(), "turnover_day", "obj-7", testEnvelope())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestClient_NonOKStatusIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := clientFor(t, srv).Query(context.Background(), "turnover_day", "obj-7", testEnvelope())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
	assert.NotErrorIs(t, err, apperrors.ErrParse)
}

func TestClient_ServerErrorCodeIsDomainErrorNotTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ResultCode":205,"ResultMessage":"too large"}`))
	}))
	defer srv.Close()

	_, err := clientFor(t, srv).Query(context.Background(), "turnover_day", "obj-7", testEnvelope())

	de, ok := apperrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, 205, de.Code)
	assert.NotErrorIs(t, err, apperrors.ErrTransport)
}

func TestClient_TimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"ResultCode":0}`))
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	client := NewClient(u.Hostname(), port, "gw-user", "gw-pass", 50*time.Millisecond)

	_, err = client.Query(context.Background(), "turnover_day", "obj-7", testEnvelope())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}
