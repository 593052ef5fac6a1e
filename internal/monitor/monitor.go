package monitor

import (
	"context"
	"errors"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/hpfan/internal/driver"
	"github.com/markusressel/hpfan/internal/persistence"
	"github.com/markusressel/hpfan/internal/ui"
	"github.com/markusressel/hpfan/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Source provides the fan channels that are sampled.
type Source interface {
	Channels() []driver.Channel
	ReadChannel(channel int) (int64, error)
	Target(channel int) int64
	MaxSpeed() int64
}

type Options struct {
	PollingRate time.Duration
	WindowSize  int
	// ExportPath receives hwmon style attribute files after every poll, empty disables the export
	ExportPath string
	// Persistence restores and saves the sample windows, may be nil
	Persistence persistence.Persistence
}

type ChannelStats struct {
	Channel    int       `json:"channel"`
	Label      string    `json:"label"`
	Last       int64     `json:"last"`
	Avg        float64   `json:"avg"`
	Max        float64   `json:"max"`
	Failures   int       `json:"failures"`
	LastUpdate time.Time `json:"lastUpdate"`
}

type channelWindow struct {
	mu       sync.Mutex
	label    string
	window   *rolling.PointPolicy
	filled   bool
	last     int64
	failures int
	updated  time.Time
}

// Monitor periodically samples all fan channels into rolling windows.
type Monitor struct {
	source  Source
	options Options
	windows cmap.ConcurrentMap[string, *channelWindow]
}

func New(source Source, options Options) *Monitor {
	if options.WindowSize <= 0 {
		options.WindowSize = 1
	}
	if options.PollingRate <= 0 {
		options.PollingRate = time.Second
	}
	return &Monitor{
		source:  source,
		options: options,
		windows: cmap.New[*channelWindow](),
	}
}

func (m *Monitor) Run(ctx context.Context) error {
	m.restore()
	defer m.persist()

	if err := m.Poll(); err != nil {
		ui.Warning("Error exporting fan attributes: %v", err)
	}

	tick := time.NewTicker(m.options.PollingRate)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if err := m.Poll(); err != nil {
				ui.Warning("Error exporting fan attributes: %v", err)
			}
		}
	}
}

// Poll samples every channel once and refreshes the attribute export.
// Failed reads are counted and read as 0 but do not enter the window.
func (m *Monitor) Poll() error {
	now := time.Now()
	for _, channel := range m.source.Channels() {
		value, err := m.source.ReadChannel(channel.Index)
		w := m.window(channel)

		w.mu.Lock()
		if err != nil {
			w.failures++
			w.last = 0
			w.updated = now
			w.mu.Unlock()
			ui.Debug("Sampling fan channel %d failed: %v", channel.Index, err)
			continue
		}
		if !w.filled {
			util.FillWindow(w.window, m.options.WindowSize, float64(value))
			w.filled = true
		} else {
			w.window.Append(float64(value))
		}
		w.last = value
		w.updated = now
		w.mu.Unlock()
	}

	if len(m.options.ExportPath) > 0 {
		return m.Export()
	}
	return nil
}

// Stats returns the statistics of a single channel, false if it was never sampled.
func (m *Monitor) Stats(channel int) (ChannelStats, bool) {
	w, ok := m.windows.Get(strconv.Itoa(channel))
	if !ok {
		return ChannelStats{}, false
	}
	return w.stats(channel), true
}

// AllStats returns the statistics of all sampled channels, ordered by channel.
func (m *Monitor) AllStats() []ChannelStats {
	var result []ChannelStats
	for key, w := range m.windows.Items() {
		channel, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		result = append(result, w.stats(channel))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Channel < result[j].Channel
	})
	return result
}

func (w *channelWindow) stats(channel int) ChannelStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ChannelStats{
		Channel:    channel,
		Label:      w.label,
		Last:       w.last,
		Avg:        util.GetWindowAvg(w.window),
		Max:        util.GetWindowMax(w.window),
		Failures:   w.failures,
		LastUpdate: w.updated,
	}
}

func (m *Monitor) window(channel driver.Channel) *channelWindow {
	return m.windows.Upsert(strconv.Itoa(channel.Index), nil, func(exist bool, valueInMap *channelWindow, _ *channelWindow) *channelWindow {
		if exist {
			return valueInMap
		}
		return &channelWindow{
			label:  channel.Label,
			window: util.CreateRollingWindow(m.options.WindowSize),
		}
	})
}

// restore seeds the windows with samples saved by a previous run
func (m *Monitor) restore() {
	if m.options.Persistence == nil {
		return
	}
	for _, channel := range m.source.Channels() {
		samples, err := m.options.Persistence.LoadChannelSamples(channel.Index)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				ui.Warning("Unable to load samples of fan channel %d: %v", channel.Index, err)
			}
			continue
		}
		if len(samples) <= 0 {
			continue
		}

		w := m.window(channel)
		w.mu.Lock()
		util.FillWindow(w.window, m.options.WindowSize, samples[0])
		for _, sample := range samples[1:] {
			w.window.Append(sample)
		}
		w.filled = true
		w.mu.Unlock()
		ui.Debug("Restored %d samples of fan channel %d", len(samples), channel.Index)
	}
}

func (m *Monitor) persist() {
	if m.options.Persistence == nil {
		return
	}
	for key, w := range m.windows.Items() {
		channel, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		w.mu.Lock()
		if !w.filled {
			w.mu.Unlock()
			continue
		}
		samples := util.GetWindowValues(w.window)
		w.mu.Unlock()

		if err := m.options.Persistence.SaveChannelSamples(channel, samples); err != nil {
			ui.Warning("Unable to save samples of fan channel %d: %v", channel, err)
		}
	}
}
