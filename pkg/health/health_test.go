package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/show-show-way/TechCompare/pkg/httpclient"
)

func up(context.Context) error { return nil }

func down(msg string) Checker {
	return func(context.Context) error { return errors.New(msg) }
}

func ready(t *testing.T, h *Handler) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

// catalogBreaker returns a breaker in front of a catalog that always fails.
func catalogBreaker(t *testing.T) (*httpclient.CircuitBreakerClient, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	cb := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.CircuitBreakerConfig{
			Name:         t.Name(),
			MaxRequests:  1,
			Timeout:      time.Minute,
			FailureRatio: 0.5,
			MinRequests:  2,
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return cb, srv.URL
}

func TestLivenessHandler(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", down("connection refused"))

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusUp, resp.Status)
	assert.Empty(t, resp.Checks)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReadiness_NothingRegistered(t *testing.T) {
	code, resp := ready(t, NewHandler())

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUp, resp.Status)
}

func TestReadiness_PostgresDownIsUnavailable(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", down("dial tcp 127.0.0.1:5432: connect: connection refused"))
	h.RegisterNonCritical("catalog", up)

	code, resp := ready(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, StatusDown, resp.Status)
	assert.Equal(t, CheckResult{
		Status:   StatusDown,
		Critical: true,
		Error:    "dial tcp 127.0.0.1:5432: connect: connection refused",
	}, resp.Checks["postgres"])
	assert.Equal(t, StatusUp, resp.Checks["catalog"].Status)
}

func TestReadiness_ClosedCatalogBreakerIsUp(t *testing.T) {
	cb, _ := catalogBreaker(t)

	h := NewHandler()
	h.RegisterCritical("postgres", up)
	h.RegisterNonCritical("catalog", cb.Check)

	code, resp := ready(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusUp, resp.Status)
	assert.Equal(t, CheckResult{Status: StatusUp}, resp.Checks["catalog"])
}

func TestReadiness_OpenCatalogBreakerDegrades(t *testing.T) {
	cb, url := catalogBreaker(t)
	for range 2 {
		_, err := cb.Get(context.Background(), url)
		require.Error(t, err)
	}
	require.ErrorIs(t, cb.Check(context.Background()), httpclient.ErrCircuitOpen)

	h := NewHandler()
	h.RegisterCritical("postgres", up)
	h.RegisterNonCritical("catalog", cb.Check)

	code, resp := ready(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.Equal(t, StatusUp, resp.Checks["postgres"].Status)
	assert.Equal(t, CheckResult{
		Status:   StatusDown,
		Critical: false,
		Error:    httpclient.ErrCircuitOpen.Error(),
	}, resp.Checks["catalog"])
}

func TestReadiness_KafkaAndCatalogDownStillServes(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("postgres", up)
	h.RegisterNonCritical("kafka", down("kafka ping: all brokers unreachable"))
	h.RegisterNonCritical("catalog", down("circuit breaker is open"))

	code, resp := ready(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.Len(t, resp.Checks, 3)
}

func TestReadiness_CheckersShareRequestDeadline(t *testing.T) {
	h := NewHandler()
	h.timeout = 20 * time.Millisecond
	h.RegisterCritical("postgres", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	code, resp := ready(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, context.DeadlineExceeded.Error(), resp.Checks["postgres"].Error)
}

func TestRegister_LastRegistrationWins(t *testing.T) {
	h := NewHandler()
	h.RegisterCritical("kafka", down("unreachable"))
	h.RegisterNonCritical("kafka", down("unreachable"))

	code, resp := ready(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.False(t, resp.Checks["kafka"].Critical)
}
