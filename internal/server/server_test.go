package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/namelens/mcname/internal/core"
	"github.com/namelens/mcname/internal/core/checker"
	"github.com/namelens/mcname/internal/observability"
)

func TestServerHealth(t *testing.T) {
	srv := New("127.0.0.1:0", prometheus.NewRegistry(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body healthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "healthy", body.Status)
}

func TestServerVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abcd123", "2025-11-07T12:00:00Z")
	t.Cleanup(func() { SetVersionInfo("dev", "unknown", "unknown") })
	srv := New("127.0.0.1:0", prometheus.NewRegistry(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body versionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "mcname", body.Name)
	require.Equal(t, "1.2.3", body.Version)
	require.Equal(t, "abcd123", body.Commit)
	require.NotEmpty(t, body.Gofulmen)
}

func TestServerUnknownRoute(t *testing.T) {
	srv := New("127.0.0.1:0", prometheus.NewRegistry(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerExposesCheckerMetrics(t *testing.T) {
	registry := observability.NewRegistry()
	metrics := checker.NewMetrics(registry)
	metrics.ObserveResults(core.AvailabilityAvailable, core.AvailabilityAvailable, core.AvailabilityIllegal)

	srv := New("127.0.0.1:0", registry, nil)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(data), `mcname_results_total{availability="Available"} 2`)
	require.Contains(t, string(data), `mcname_results_total{availability="Illegal"} 1`)
}
