package privval

import (
	"bytes"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	// MetricsSubsystem is a subsystem shared by all metrics exposed by this
	// package.
	MetricsSubsystem = "vrf"
)

// Metrics contains metrics exposed by this package.
//
// The go-kit fields feed whatever sink the caller wired (Prometheus or
// discard). Independently, every record is kept in atomic counters that back
// Snapshot, PrometheusText and JSON.
type Metrics struct {
	// Prove latency in seconds.
	ProveDuration metrics.Histogram
	// Verify latency in seconds.
	VerifyDuration metrics.Histogram
	// Operations by operation (prove, verify, hsm) and result (success, failure).
	Operations metrics.Counter

	proveTotal, proveSuccess, proveFailure, proveDurationUs     atomic.Uint64
	verifyTotal, verifySuccess, verifyFailure, verifyDurationUs atomic.Uint64
	hsmOperations, hsmErrors                                    atomic.Uint64
}

// PrometheusMetrics returns Metrics build using Prometheus client library.
// Optionally, labels can be provided along with their values ("foo",
// "fooValue"). The collectors go to the default Prometheus registry, so call
// it once per namespace.
func PrometheusMetrics(namespace string, labelsAndValues ...string) *Metrics {
	labels := []string{}
	for i := 0; i < len(labelsAndValues); i += 2 {
		labels = append(labels, labelsAndValues[i])
	}
	return &Metrics{
		ProveDuration: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "prove_duration_seconds",
			Help:      "Time spent producing a VRF proof.",
			Buckets:   stdprometheus.ExponentialBuckets(0.0001, 2, 12),
		}, labels).With(labelsAndValues...),
		VerifyDuration: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "verify_duration_seconds",
			Help:      "Time spent verifying a VRF proof.",
			Buckets:   stdprometheus.ExponentialBuckets(0.0001, 2, 12),
		}, labels).With(labelsAndValues...),
		Operations: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "operations",
			Help:      "Number of VRF operations by operation and result.",
		}, append(labels, "operation", "result")).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		ProveDuration:  discard.NewHistogram(),
		VerifyDuration: discard.NewHistogram(),
		Operations:     discard.NewCounter(),
	}
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func (m *Metrics) RecordProve(d time.Duration, ok bool) {
	m.proveTotal.Add(1)
	m.proveDurationUs.Add(uint64(d.Microseconds()))
	if ok {
		m.proveSuccess.Add(1)
	} else {
		m.proveFailure.Add(1)
	}
	m.ProveDuration.Observe(d.Seconds())
	m.Operations.With("operation", "prove", "result", result(ok)).Add(1)
}

func (m *Metrics) RecordVerify(d time.Duration, ok bool) {
	m.verifyTotal.Add(1)
	m.verifyDurationUs.Add(uint64(d.Microseconds()))
	if ok {
		m.verifySuccess.Add(1)
	} else {
		m.verifyFailure.Add(1)
	}
	m.VerifyDuration.Observe(d.Seconds())
	m.Operations.With("operation", "verify", "result", result(ok)).Add(1)
}

func (m *Metrics) RecordHSMOperation(ok bool) {
	m.hsmOperations.Add(1)
	if !ok {
		m.hsmErrors.Add(1)
	}
	m.Operations.With("operation", "hsm", "result", result(ok)).Add(1)
}

type OperationStats struct {
	Total         uint64 `json:"total"`
	Success       uint64 `json:"success"`
	Failure       uint64 `json:"failure"`
	AvgDurationUs uint64 `json:"avg_duration_us"`
}

type HSMStats struct {
	Operations uint64 `json:"operations"`
	Errors     uint64 `json:"errors"`
}

type Snapshot struct {
	Prove  OperationStats `json:"prove"`
	Verify OperationStats `json:"verify"`
	HSM    HSMStats       `json:"hsm"`
}

func average(sum, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return sum / n
}

// Snapshot reads all counters. Averages are total duration over total count,
// or 0 before the first operation.
func (m *Metrics) Snapshot() Snapshot {
	proveTotal := m.proveTotal.Load()
	verifyTotal := m.verifyTotal.Load()
	return Snapshot{
		Prove: OperationStats{
			Total:         proveTotal,
			Success:       m.proveSuccess.Load(),
			Failure:       m.proveFailure.Load(),
			AvgDurationUs: average(m.proveDurationUs.Load(), proveTotal),
		},
		Verify: OperationStats{
			Total:         verifyTotal,
			Success:       m.verifySuccess.Load(),
			Failure:       m.verifyFailure.Load(),
			AvgDurationUs: average(m.verifyDurationUs.Load(), verifyTotal),
		},
		HSM: HSMStats{
			Operations: m.hsmOperations.Load(),
			Errors:     m.hsmErrors.Load(),
		},
	}
}

// Registry returns a private registry exposing the counters as vrf_* series,
// suitable for promhttp.HandlerFor.
func (m *Metrics) Registry() *stdprometheus.Registry {
	reg := stdprometheus.NewRegistry()

	counter := func(name, help string, v *atomic.Uint64) {
		reg.MustRegister(stdprometheus.NewCounterFunc(stdprometheus.CounterOpts{
			Name: name,
			Help: help,
		}, func() float64 { return float64(v.Load()) }))
	}
	gauge := func(name, help string, f func() uint64) {
		reg.MustRegister(stdprometheus.NewGaugeFunc(stdprometheus.GaugeOpts{
			Name: name,
			Help: help,
		}, func() float64 { return float64(f()) }))
	}

	counter("vrf_prove_total", "Total VRF prove operations", &m.proveTotal)
	counter("vrf_prove_success", "Successful VRF prove operations", &m.proveSuccess)
	counter("vrf_prove_failure", "Failed VRF prove operations", &m.proveFailure)
	gauge("vrf_prove_duration_microseconds_avg", "Average VRF prove duration",
		func() uint64 { return m.Snapshot().Prove.AvgDurationUs })

	counter("vrf_verify_total", "Total VRF verify operations", &m.verifyTotal)
	counter("vrf_verify_success", "Successful VRF verify operations", &m.verifySuccess)
	counter("vrf_verify_failure", "Failed VRF verify operations", &m.verifyFailure)
	gauge("vrf_verify_duration_microseconds_avg", "Average VRF verify duration",
		func() uint64 { return m.Snapshot().Verify.AvgDurationUs })

	counter("vrf_hsm_operations", "Total HSM operations", &m.hsmOperations)
	counter("vrf_hsm_errors", "HSM operation errors", &m.hsmErrors)

	return reg
}

// PrometheusText renders the counters in the Prometheus text exposition
// format.
func (m *Metrics) PrometheusText() (string, error) {
	families, err := m.Registry().Gather()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// JSON renders the snapshot as
// {"prove":{...},"verify":{...},"hsm":{"operations":..,"errors":..}}.
func (m *Metrics) JSON() (string, error) {
	bz, err := json.Marshal(m.Snapshot())
	if err != nil {
		return "", err
	}
	return string(bz), nil
}

// Timer measures one operation.
type Timer struct {
	start time.Time
}

func NewTimer() Timer {
	return Timer{start: time.Now()}
}

func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
