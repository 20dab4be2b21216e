package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscore/internal/logger"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestServer(checks map[string]Pinger) *Server {
	return NewServer(Config{
		ServiceName: "pickscore",
		Version:     "test",
		Logger:      logger.NewNopLogger(),
		Checks:      checks,
		MetricsPath: "/metrics",
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("pickscore_queries_total 1\n"))
		}),
	})
}

func serve(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthAndLive(t *testing.T) {
	s := newTestServer(nil)

	rec, body := serve(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])

	rec, _ = serve(t, s, "/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyRequiresSetReady(t *testing.T) {
	s := newTestServer(nil)

	rec, body := serve(t, s, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", body["status"])

	s.SetReady(true)
	rec, body = serve(t, s, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestReadyReportsFailingDependency(t *testing.T) {
	s := newTestServer(map[string]Pinger{
		"provider": pingerFunc(func(context.Context) error { return errors.New("circuit breaker open") }),
		"cache":    pingerFunc(func(context.Context) error { return nil }),
	})
	s.SetReady(true)

	rec, body := serve(t, s, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	checks, ok := body["checks"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", checks["cache"])
	assert.Contains(t, checks["provider"], "circuit breaker open")
}

func TestMetricsRouteMounted(t *testing.T) {
	s := newTestServer(nil)

	rec, _ := serve(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pickscore_queries_total")
}

func TestShutdownWithoutStart(t *testing.T) {
	assert.NoError(t, newTestServer(nil).Shutdown())
}
