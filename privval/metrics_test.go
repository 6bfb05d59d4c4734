package privval

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NopMetrics()
	require.Equal(t, Snapshot{}, m.Snapshot())

	m.RecordProve(100*time.Microsecond, true)
	m.RecordProve(300*time.Microsecond, false)
	m.RecordVerify(50*time.Microsecond, true)
	m.RecordHSMOperation(true)
	m.RecordHSMOperation(false)

	want := Snapshot{
		Prove:  OperationStats{Total: 2, Success: 1, Failure: 1, AvgDurationUs: 200},
		Verify: OperationStats{Total: 1, Success: 1, Failure: 0, AvgDurationUs: 50},
		HSM:    HSMStats{Operations: 2, Errors: 1},
	}
	if diff := cmp.Diff(want, m.Snapshot()); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestMetricsPrometheusText(t *testing.T) {
	m := NopMetrics()
	m.RecordProve(10*time.Microsecond, true)
	m.RecordProve(30*time.Microsecond, true)
	m.RecordVerify(5*time.Microsecond, false)
	m.RecordHSMOperation(false)

	text, err := m.PrometheusText()
	require.NoError(t, err)

	for _, line := range []string{
		"# HELP vrf_prove_total Total VRF prove operations",
		"# TYPE vrf_prove_total counter",
		"vrf_prove_total 2",
		"vrf_prove_success 2",
		"vrf_prove_failure 0",
		"# TYPE vrf_prove_duration_microseconds_avg gauge",
		"vrf_prove_duration_microseconds_avg 20",
		"vrf_verify_total 1",
		"vrf_verify_failure 1",
		"vrf_verify_duration_microseconds_avg 5",
		"# HELP vrf_hsm_operations Total HSM operations",
		"vrf_hsm_operations 1",
		"vrf_hsm_errors 1",
	} {
		assert.Contains(t, text, line+"\n")
	}
	assert.Equal(t, 10, strings.Count(text, "# TYPE "))
}

func TestMetricsJSON(t *testing.T) {
	m := NopMetrics()
	m.RecordVerify(8*time.Microsecond, true)

	out, err := m.JSON()
	require.NoError(t, err)

	var doc map[string]map[string]uint64
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, map[string]uint64{"total": 0, "success": 0, "failure": 0, "avg_duration_us": 0}, doc["prove"])
	require.Equal(t, map[string]uint64{"total": 1, "success": 1, "failure": 0, "avg_duration_us": 8}, doc["verify"])
	require.Equal(t, map[string]uint64{"operations": 0, "errors": 0}, doc["hsm"])
}

func TestPrometheusMetrics(t *testing.T) {
	// registers on the default registry, so only once per test binary
	m := PrometheusMetrics("privval_test", "chain_id", "test")
	m.RecordProve(time.Millisecond, true)
	m.RecordVerify(time.Millisecond, false)
	m.RecordHSMOperation(true)
	require.EqualValues(t, 1, m.Snapshot().Prove.Total)
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	time.Sleep(time.Millisecond)
	require.GreaterOrEqual(t, timer.Elapsed(), time.Millisecond)
}
