package statistics

import (
	"github.com/markusressel/hpfan/internal/driver"
	"github.com/prometheus/client_golang/prometheus"
)

const driverSubsystem = "driver"

type StateSource interface {
	State() driver.State
}

// DriverCollector exports the active strategy selection.
type DriverCollector struct {
	source   StateSource
	info     *prometheus.Desc
	channels *prometheus.Desc
}

func NewDriverCollector(source StateSource) *DriverCollector {
	return &DriverCollector{
		source: source,
		info: prometheus.NewDesc(prometheus.BuildFQName(namespace, driverSubsystem, "info"),
			"Active read and control strategy, always 1",
			[]string{"readtype", "ctrltype"}, nil,
		),
		channels: prometheus.NewDesc(prometheus.BuildFQName(namespace, driverSubsystem, "channels"),
			"Number of fan channels present",
			nil, nil,
		),
	}
}

func (collector *DriverCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.info
	ch <- collector.channels
}

func (collector *DriverCollector) Collect(ch chan<- prometheus.Metric) {
	state := collector.source.State()
	ch <- prometheus.MustNewConstMetric(collector.info, prometheus.GaugeValue, 1, state.ReadStrategy.String(), state.ControlStrategy.String())
	ch <- prometheus.MustNewConstMetric(collector.channels, prometheus.GaugeValue, float64(state.ChannelCount))
}
