package driver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/markusressel/hpfan/internal/firmware"
	"github.com/markusressel/hpfan/internal/strategy"
	"github.com/markusressel/hpfan/internal/ui"
)

// ErrChannelOutOfRange is returned for channel indices the machine does not have.
var ErrChannelOutOfRange = errors.New("channel out of range")

// Gateway is the subset of firmware.Gateway the driver depends on.
type Gateway interface {
	strategy.Caller
	strategy.Prober
}

// State is the process wide driver configuration.
type State struct {
	ReadStrategy    strategy.ReadStrategy    `json:"-"`
	ControlStrategy strategy.ControlStrategy `json:"-"`
	ChannelCount    int                      `json:"channelCount"`
	Debug           bool                     `json:"debug"`
}

type Channel struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	HasRpm bool   `json:"hasRpm"`
}

type Options struct {
	// ReadStrategy is detected if left unset
	ReadStrategy strategy.ReadStrategy
	// ControlStrategy defaults to auto if left unset
	ControlStrategy strategy.ControlStrategy
	Debug           bool
	// Chip is used by the i2cc strategies, may be nil
	Chip strategy.ExternalChip
}

// Driver dispatches fan reads and writes to the selected firmware protocols.
type Driver struct {
	gateway Gateway
	chip    strategy.ExternalChip

	// guards the strategy fields against reconfiguration
	mu     sync.RWMutex
	state  State
	reader strategy.Reader
	writer strategy.Writer
}

// New initializes the driver, probing the firmware for anything not configured.
func New(gateway Gateway, opts Options) *Driver {
	d := &Driver{
		gateway: gateway,
		chip:    opts.Chip,
	}

	readStrategy := opts.ReadStrategy
	if readStrategy == strategy.ReadUnset {
		d.debugf("No readtype specified. Trying auto-detection.")
		readStrategy = strategy.SelectReadStrategy(readStrategy, gateway)
	}

	controlStrategy := opts.ControlStrategy
	if controlStrategy == strategy.ControlUnset {
		d.debugf("No ctrltype specified. Fan control stays with the firmware.")
		controlStrategy = strategy.SelectControlStrategy(controlStrategy)
	}

	d.state = State{
		ReadStrategy:    readStrategy,
		ControlStrategy: controlStrategy,
		ChannelCount:    strategy.DetectChannelCount(gateway),
		Debug:           opts.Debug,
	}
	d.reader = strategy.NewReader(readStrategy, gateway, d.chip)
	d.writer = strategy.NewWriter(controlStrategy, gateway, d.chip)

	d.debugf("hp fan driver initialized (readtype=%s, ctrltype=%s, channels=%d).", readStrategy, controlStrategy, d.state.ChannelCount)

	return d
}

// State returns a snapshot of the current driver state.
func (d *Driver) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Channels lists the fan channels present on this machine.
func (d *Driver) Channels() []Channel {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]Channel, 0, d.state.ChannelCount)
	for idx := 0; idx < d.state.ChannelCount; idx++ {
		result = append(result, Channel{
			Index:  idx,
			Label:  label(idx),
			HasRpm: d.reader.HasRpm(),
		})
	}
	return result
}

// ReadChannel returns the fan speed of channel, including any firmware error.
func (d *Driver) ReadChannel(channel int) (int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err := d.checkChannel(channel); err != nil {
		return 0, err
	}
	return d.reader.Read(channel)
}

// GetInput returns the fan speed of channel, any failure reads as 0.
func (d *Driver) GetInput(channel int) int64 {
	value, err := d.ReadChannel(channel)
	if err != nil {
		d.debugf("Reading fan channel %d failed: %v", channel, err)
		return 0
	}
	return value
}

// InputText renders GetInput as a decimal line.
func (d *Driver) InputText(channel int) string {
	return fmt.Sprintf("%d\n", d.GetInput(channel))
}

// WriteChannel requests percent on channel, including any firmware error.
func (d *Driver) WriteChannel(channel int, percent int64) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err := d.checkChannel(channel); err != nil {
		return err
	}
	return d.writer.Write(channel, percent)
}

// SetInput requests percent on channel. Firmware failures are logged in
// debug mode and otherwise ignored, only an invalid channel is reported.
func (d *Driver) SetInput(channel int, percent int64) error {
	err := d.WriteChannel(channel, percent)
	if errors.Is(err, ErrChannelOutOfRange) {
		return err
	}
	if err != nil {
		d.debugf("Setting fan channel %d to %d failed: %v", channel, percent, err)
	}
	return nil
}

// SetInputText parses a non-negative decimal value and passes it to SetInput.
func (d *Driver) SetInputText(channel int, text string) error {
	value, err := strconv.ParseUint(strings.TrimSpace(text), 10, 63)
	if err != nil {
		return fmt.Errorf("invalid fan speed %q: %w", strings.TrimSpace(text), err)
	}
	return d.SetInput(channel, int64(value))
}

// Label returns the human readable name of channel.
func (d *Driver) Label(channel int) string {
	return label(channel)
}

func label(channel int) string {
	return fmt.Sprintf("Fan %d", channel+1)
}

// ReadMaxSpeed returns the raw maximum fan speed reported by the firmware.
func (d *Driver) ReadMaxSpeed() (int64, error) {
	return d.gateway.Call(firmware.ValueMaxRpm)
}

// MaxSpeed returns the raw maximum fan speed, 0 if unavailable.
func (d *Driver) MaxSpeed() int64 {
	value, err := d.ReadMaxSpeed()
	if err != nil {
		d.debugf("Reading max fan speed failed: %v", err)
		return 0
	}
	return value
}

// ReadTarget returns the target speed of channel in RPM.
func (d *Driver) ReadTarget(channel int) (int64, error) {
	d.mu.RLock()
	err := d.checkChannel(channel)
	d.mu.RUnlock()
	if err != nil {
		return 0, err
	}

	method := firmware.ValueFan0Target
	if channel == strategy.ChannelSecondary {
		method = firmware.ValueFan1Target
	}
	raw, err := d.gateway.Call(method)
	if err != nil {
		return 0, err
	}
	return strategy.RpmFromRaw(raw), nil
}

// Target returns the target speed of channel in RPM, 0 if unavailable.
func (d *Driver) Target(channel int) int64 {
	value, err := d.ReadTarget(channel)
	if err != nil {
		d.debugf("Reading target of fan channel %d failed: %v", channel, err)
		return 0
	}
	return value
}

func (d *Driver) checkChannel(channel int) error {
	if channel < 0 || channel >= d.state.ChannelCount {
		return fmt.Errorf("%w: %d (channels: %d)", ErrChannelOutOfRange, channel, d.state.ChannelCount)
	}
	return nil
}

func (d *Driver) debugf(format string, a ...interface{}) {
	if d.state.Debug {
		ui.Debug(format, a...)
	}
}
