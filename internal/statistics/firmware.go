package statistics

import (
	"errors"

	"github.com/markusressel/hpfan/internal/firmware"
	"github.com/prometheus/client_golang/prometheus"
)

const firmwareSubsystem = "firmware"

const (
	resultOk               = "ok"
	resultNotFound         = "not_found"
	resultInvocationFailed = "invocation_failed"
	resultUnexpectedType   = "unexpected_type"
	resultError            = "error"
)

// FirmwareCollector counts firmware calls per method and outcome.
// Its Observe method is meant to be installed as a firmware.CallObserver.
type FirmwareCollector struct {
	calls *prometheus.CounterVec
}

func NewFirmwareCollector() *FirmwareCollector {
	return &FirmwareCollector{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: firmwareSubsystem,
			Name:      "calls_total",
			Help:      "Number of firmware method calls by method and result",
		}, []string{"method", "result"}),
	}
}

func (collector *FirmwareCollector) Observe(method string, err error) {
	collector.calls.WithLabelValues(method, callResult(err)).Inc()
}

func (collector *FirmwareCollector) Describe(ch chan<- *prometheus.Desc) {
	collector.calls.Describe(ch)
}

func (collector *FirmwareCollector) Collect(ch chan<- prometheus.Metric) {
	collector.calls.Collect(ch)
}

func callResult(err error) string {
	switch {
	case err == nil:
		return resultOk
	case errors.Is(err, firmware.ErrNotFound):
		return resultNotFound
	case errors.Is(err, firmware.ErrInvocationFailed):
		return resultInvocationFailed
	case errors.Is(err, firmware.ErrUnexpectedType):
		return resultUnexpectedType
	default:
		return resultError
	}
}
