package strategy

import (
	"testing"

	"github.com/markusressel/hpfan/internal/firmware"
)

// createFirmware returns a gateway backed by a simulated firmware exposing methods.
func createFirmware(t *testing.T, methods map[string]firmware.SimulatedMethod) (*firmware.Gateway, *firmware.Simulated) {
	t.Helper()
	fw := firmware.NewSimulated(firmware.SimulatedProfile{Methods: methods})
	return firmware.NewGateway(fw, false), fw
}

// allMethods exposes every known firmware object with a non-sentinel value.
func allMethods() map[string]firmware.SimulatedMethod {
	methods := map[string]firmware.SimulatedMethod{}
	for _, name := range firmware.KnownMethods {
		methods[name] = firmware.SimulatedMethod{Value: 42}
	}
	return methods
}

type probeSet map[string]bool

func (p probeSet) Exists(method string) bool {
	return p[method]
}

type recordingChip struct {
	speeds   map[int]int64
	requests map[int][]int64
}

func (c *recordingChip) FanSpeed(channel int) (int64, error) {
	return c.speeds[channel], nil
}

func (c *recordingChip) SetFanPercent(channel int, percent int64) error {
	if c.requests == nil {
		c.requests = map[int][]int64{}
	}
	c.requests[channel] = append(c.requests[channel], percent)
	return nil
}
