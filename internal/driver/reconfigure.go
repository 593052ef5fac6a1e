package driver

import (
	"fmt"

	"github.com/markusressel/hpfan/internal/strategy"
)

// SetReadStrategy switches the read protocol. ReadUnset re-runs detection.
// The returned state is the one the switch produced.
func (d *Driver) SetReadStrategy(s strategy.ReadStrategy) State {
	d.mu.Lock()
	defer d.mu.Unlock()

	s = strategy.SelectReadStrategy(s, d.gateway)
	d.state.ReadStrategy = s
	d.reader = strategy.NewReader(s, d.gateway, d.chip)
	return d.state
}

// SetControlStrategy switches the control protocol. ControlUnset means auto.
func (d *Driver) SetControlStrategy(s strategy.ControlStrategy) State {
	d.mu.Lock()
	defer d.mu.Unlock()

	s = strategy.SelectControlStrategy(s)
	d.state.ControlStrategy = s
	d.writer = strategy.NewWriter(s, d.gateway, d.chip)
	return d.state
}

// SetReadStrategyToken selects the read protocol by its selector token.
// Unknown tokens leave the current selection untouched.
func (d *Driver) SetReadStrategyToken(token string) (State, error) {
	s, err := strategy.ParseReadStrategy(token)
	if err != nil {
		return State{}, err
	}
	if s == strategy.ReadUnset {
		return State{}, fmt.Errorf("%w: empty read strategy", strategy.ErrInvalidConfiguration)
	}
	return d.SetReadStrategy(s), nil
}

// ReadStrategyToken returns the selector token of the current read protocol.
func (d *Driver) ReadStrategyToken() string {
	return d.State().ReadStrategy.String()
}

// SetControlStrategyToken selects the control protocol by its selector token.
// Unknown tokens leave the current selection untouched.
func (d *Driver) SetControlStrategyToken(token string) (State, error) {
	s, err := strategy.ParseControlStrategy(token)
	if err != nil {
		return State{}, err
	}
	if s == strategy.ControlUnset {
		return State{}, fmt.Errorf("%w: empty control strategy", strategy.ErrInvalidConfiguration)
	}
	return d.SetControlStrategy(s), nil
}

// ControlStrategyToken returns the selector token of the current control protocol.
func (d *Driver) ControlStrategyToken() string {
	return d.State().ControlStrategy.String()
}
