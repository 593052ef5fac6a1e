package strategy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfiguration is returned for unrecognized strategy selector tokens.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ReadStrategy selects the firmware protocol used to read fan speeds.
type ReadStrategy int

const (
	// ReadUnset means no strategy was configured, it is resolved by detection
	ReadUnset ReadStrategy = iota
	ReadNone
	ReadThermalStatus
	ReadExtendedFanValue
	ReadFanRpm
	ReadKeyboardStyle
	ReadDecimalSpeed
	ReadExternalChip
)

var readStrategyTokens = map[ReadStrategy]string{
	ReadNone:             "none",
	ReadThermalStatus:    "gtmm",
	ReadExtendedFanValue: "gfve",
	ReadFanRpm:           "gfrm",
	ReadKeyboardStyle:    "kgfs",
	ReadDecimalSpeed:     "gfsd",
	ReadExternalChip:     "i2cc",
}

// ReadStrategyTokens lists all accepted read selector tokens.
var ReadStrategyTokens = []string{"none", "gtmm", "gfve", "gfrm", "kgfs", "gfsd", "i2cc"}

// String returns the canonical selector token, or an empty string if unset.
func (s ReadStrategy) String() string {
	return readStrategyTokens[s]
}

// ParseReadStrategy maps a selector token to a ReadStrategy.
// An empty token yields ReadUnset.
func ParseReadStrategy(token string) (ReadStrategy, error) {
	token = strings.TrimSpace(token)
	if len(token) == 0 {
		return ReadUnset, nil
	}
	for strategy, t := range readStrategyTokens {
		if t == token {
			return strategy, nil
		}
	}
	return ReadUnset, fmt.Errorf("%w: unknown read strategy %q, use one of: %s", ErrInvalidConfiguration, token, strings.Join(ReadStrategyTokens, " | "))
}

// ControlStrategy selects the firmware protocol used to write fan speeds.
type ControlStrategy int

const (
	// ControlUnset means no strategy was configured, it resolves to ControlAuto
	ControlUnset ControlStrategy = iota
	// ControlAuto leaves fan speed to the firmware, writes are ignored
	ControlAuto
	ControlThermalStatusSet
	ControlKeyboardSet
	ControlKeyboardCurveLoad
	ControlDecimalSet
	ControlExternalChip
)

var controlStrategyTokens = map[ControlStrategy]string{
	ControlAuto:              "auto",
	ControlThermalStatusSet:  "stmm",
	ControlKeyboardSet:       "ksfs",
	ControlKeyboardCurveLoad: "kfcl",
	ControlDecimalSet:        "sfsd",
	ControlExternalChip:      "i2cc",
}

// ControlStrategyTokens lists all accepted control selector tokens.
var ControlStrategyTokens = []string{"auto", "stmm", "ksfs", "kfcl", "sfsd", "i2cc"}

// String returns the canonical selector token, or an empty string if unset.
func (s ControlStrategy) String() string {
	return controlStrategyTokens[s]
}

// ParseControlStrategy maps a selector token to a ControlStrategy.
// An empty token yields ControlUnset.
func ParseControlStrategy(token string) (ControlStrategy, error) {
	token = strings.TrimSpace(token)
	if len(token) == 0 {
		return ControlUnset, nil
	}
	for strategy, t := range controlStrategyTokens {
		if t == token {
			return strategy, nil
		}
	}
	return ControlUnset, fmt.Errorf("%w: unknown control strategy %q, use one of: %s", ErrInvalidConfiguration, token, strings.Join(ControlStrategyTokens, " | "))
}
