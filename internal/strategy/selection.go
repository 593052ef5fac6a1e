package strategy

import (
	"github.com/markusressel/hpfan/internal/firmware"
)

type detectionRule struct {
	Method   string
	Strategy ReadStrategy
}

// ReadDetectionOrder is the priority in which read protocols are probed.
var ReadDetectionOrder = []detectionRule{
	{Method: firmware.MethodFanValueExtended, Strategy: ReadExtendedFanValue},
	{Method: firmware.MethodFanRpm, Strategy: ReadFanRpm},
	{Method: firmware.MethodEcFanSpeedDecimal, Strategy: ReadDecimalSpeed},
	{Method: firmware.MethodEcFanSpeed, Strategy: ReadKeyboardStyle},
}

// DetectReadStrategy returns the first read protocol whose method exists,
// or ReadNone if the firmware offers none of them.
func DetectReadStrategy(prober Prober) ReadStrategy {
	for _, rule := range ReadDetectionOrder {
		if prober.Exists(rule.Method) {
			return rule.Strategy
		}
	}
	return ReadNone
}

// SelectReadStrategy keeps a configured strategy and detects one otherwise.
func SelectReadStrategy(configured ReadStrategy, prober Prober) ReadStrategy {
	if configured != ReadUnset {
		return configured
	}
	return DetectReadStrategy(prober)
}

// SelectControlStrategy keeps a configured strategy and falls back to ControlAuto.
// There is no probing for control protocols.
func SelectControlStrategy(configured ControlStrategy) ControlStrategy {
	if configured != ControlUnset {
		return configured
	}
	return ControlAuto
}

// DetectChannelCount returns 2 if the firmware exposes a secondary fan value, 1 otherwise.
func DetectChannelCount(prober Prober) int {
	if prober.Exists(firmware.ValueFan1) {
		return 2
	}
	return 1
}
