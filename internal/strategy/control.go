package strategy

import (
	"github.com/markusressel/hpfan/internal/firmware"
	"github.com/markusressel/hpfan/internal/ui"
)

// Writer applies a requested fan speed percentage using one specific firmware protocol.
type Writer interface {
	Strategy() ControlStrategy
	// Write requests percent (clamped to 100) on channel. Channels the
	// protocol does not cover are a successful no-op.
	Write(channel int, percent int64) error
}

// NewWriter returns the Writer implementing strategy.
func NewWriter(strategy ControlStrategy, caller Caller, chip ExternalChip) Writer {
	switch strategy {
	case ControlDecimalSet:
		return &decimalSetWriter{caller: caller}
	case ControlThermalStatusSet, ControlKeyboardSet, ControlKeyboardCurveLoad:
		return &unencodedWriter{strategy: strategy}
	case ControlExternalChip:
		return &externalChipWriter{chip: chip}
	default:
		return &autoWriter{}
	}
}

// autoWriter leaves fan control to the firmware.
type autoWriter struct{}

func (w *autoWriter) Strategy() ControlStrategy { return ControlAuto }

func (w *autoWriter) Write(int, int64) error {
	return nil
}

type decimalSetWriter struct {
	caller Caller
}

func (w *decimalSetWriter) Strategy() ControlStrategy { return ControlDecimalSet }

func (w *decimalSetWriter) Write(channel int, percent int64) error {
	percent = ClampPercent(percent)
	if channel != ChannelPrimary {
		return nil
	}
	_, err := w.caller.CallWithArg(firmware.MethodEcSetFanSpeedDecimal, percent)
	return err
}

// unencodedWriter covers protocols whose argument encoding is not known yet.
type unencodedWriter struct {
	strategy ControlStrategy
}

func (w *unencodedWriter) Strategy() ControlStrategy { return w.strategy }

func (w *unencodedWriter) Write(channel int, percent int64) error {
	ui.Debug("No firmware encoding known for control strategy %s, ignoring %d%% on channel %d", w.strategy, ClampPercent(percent), channel)
	return nil
}

type externalChipWriter struct {
	chip ExternalChip
}

func (w *externalChipWriter) Strategy() ControlStrategy { return ControlExternalChip }

func (w *externalChipWriter) Write(channel int, percent int64) error {
	percent = ClampPercent(percent)
	if w.chip == nil || (channel != ChannelPrimary && channel != ChannelSecondary) {
		return nil
	}
	return w.chip.SetFanPercent(channel, percent)
}
