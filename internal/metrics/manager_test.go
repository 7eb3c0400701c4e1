package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RegistersOnGivenRegistry(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterWorkoutsLogged.Inc()
	m.CounterRequests.WithLabelValues("POST", "/api/log-workout", "200").Inc()

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP liftlog_test_server_workouts_logged The total number of stored workout submissions
# TYPE liftlog_test_server_workouts_logged counter
liftlog_test_server_workouts_logged 1
`), "liftlog_test_server_workouts_logged")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterRequests.WithLabelValues("POST", "/api/log-workout", "200")))
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	// A manager can share the registry with the runtime collectors.
	assert.NotPanics(t, func() { NewManager("liftlog", "server", reg) })
}
