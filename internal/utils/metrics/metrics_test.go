package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("", reg)
	m.RecordAuthEvent("login_success")
	m.CollaborationEventsTotal.WithLabelValues("team.created").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "teamhub_auth_events_total")
	assert.Contains(t, names, "teamhub_collaboration_events_total")
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New("dup", reg)
	assert.Panics(t, func() { New("dup", reg) })
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m := New("http_test", prometheus.NewRegistry())

	t.Run("records request with 2xx status", func(t *testing.T) {
		m.RecordHTTPRequest("GET", "/api/v1/teams", 200, 100*time.Millisecond)

		count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/teams", "2xx"))
		assert.Equal(t, float64(1), count)
	})

	t.Run("records request with 4xx status", func(t *testing.T) {
		m.RecordHTTPRequest("POST", "/api/v1/auth/login", 401, 50*time.Millisecond)

		count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/auth/login", "4xx"))
		assert.Equal(t, float64(1), count)
	})

	t.Run("records request with 5xx status", func(t *testing.T) {
		m.RecordHTTPRequest("PUT", "/api/v1/teams/:id", 500, 200*time.Millisecond)

		count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("PUT", "/api/v1/teams/:id", "5xx"))
		assert.Equal(t, float64(1), count)
	})
}

func TestMetrics_RecordAuthEvent(t *testing.T) {
	m := New("auth_test", prometheus.NewRegistry())

	m.RecordAuthEvent("login_failed")
	m.RecordAuthEvent("login_failed")
	m.RecordAuthEvent("logout")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.AuthEventsTotal.WithLabelValues("login_failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuthEventsTotal.WithLabelValues("logout")))
}

func TestStatusCodeToString(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{200, "2xx"},
		{299, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{499, "4xx"},
		{500, "5xx"},
		{599, "5xx"},
		{100, "unknown"},
		{0, "unknown"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, statusCodeToString(tt.code))
		})
	}
}
