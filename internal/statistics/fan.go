package statistics

import (
	"strconv"

	"github.com/markusressel/hpfan/internal/driver"
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

// FanSource provides the fan readings exported by the FanCollector.
type FanSource interface {
	Channels() []driver.Channel
	GetInput(channel int) int64
	Target(channel int) int64
	MaxSpeed() int64
}

type FanCollector struct {
	source FanSource
	input  *prometheus.Desc
	target *prometheus.Desc
	max    *prometheus.Desc
}

func NewFanCollector(source FanSource) *FanCollector {
	return &FanCollector{
		source: source,
		input: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "input"),
			"Current speed value of the fan channel",
			[]string{"channel", "label"}, nil,
		),
		target: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "target_rpm"),
			"Target RPM of the fan channel as reported by the firmware",
			[]string{"channel", "label"}, nil,
		),
		max: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "max"),
			"Maximum fan speed value reported by the firmware",
			nil, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.input
	ch <- collector.target
	ch <- collector.max
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	for _, channel := range collector.source.Channels() {
		index := strconv.Itoa(channel.Index)
		ch <- prometheus.MustNewConstMetric(collector.input, prometheus.GaugeValue, float64(collector.source.GetInput(channel.Index)), index, channel.Label)
		ch <- prometheus.MustNewConstMetric(collector.target, prometheus.GaugeValue, float64(collector.source.Target(channel.Index)), index, channel.Label)
	}
	ch <- prometheus.MustNewConstMetric(collector.max, prometheus.GaugeValue, float64(collector.source.MaxSpeed()))
}
