package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountersAndHandler(t *testing.T) {
	m := New()

	m.Mutations.WithLabelValues("set_budget").Inc()
	m.Mutations.WithLabelValues("set_budget").Inc()
	m.PersistWrites.WithLabelValues(ResultError).Inc()
	m.SnapshotBytes.Set(128)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Mutations.WithLabelValues("set_budget")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistWrites.WithLabelValues(ResultError)))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `splitledger_mutations_total{op="set_budget"} 2`)
	assert.Contains(t, string(body), "splitledger_snapshot_bytes 128")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.Mutations.WithLabelValues("x").Inc()

	assert.Equal(t, 0.0, testutil.ToFloat64(b.Mutations.WithLabelValues("x")))
	assert.NotSame(t, a.Registry(), b.Registry())
}
