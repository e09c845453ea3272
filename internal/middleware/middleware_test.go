package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/metrics"
)

func TestLoggingInterceptor_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	interceptor := LoggingInterceptor(nil, m)

	ok := interceptor(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&struct{}{}), nil
	})
	_, err := ok(context.Background(), connect.NewRequest(&struct{}{}))
	require.NoError(t, err)

	notFound := interceptor(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	})
	_, err = notFound(context.Background(), connect.NewRequest(&struct{}{}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	procedure := connect.NewRequest(&struct{}{}).Spec().Procedure
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(procedure, codeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(procedure, connect.CodeNotFound.String())))
}

func TestLoggingInterceptor_NilMetrics(t *testing.T) {
	interceptor := LoggingInterceptor(nil, nil)
	next := interceptor(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, errors.New("boom")
	})
	_, err := next(context.Background(), connect.NewRequest(&struct{}{}))
	assert.EqualError(t, err, "boom")
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name       string
		method     string
		wantStatus int
		wantCalled bool
	}{
		{"preflight", http.MethodOptions, http.StatusOK, false},
		{"post", http.MethodPost, http.StatusTeapot, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestLogging_PassesThrough(t *testing.T) {
	handler := Logging(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
