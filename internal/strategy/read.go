package strategy

import (
	"github.com/markusressel/hpfan/internal/firmware"
)

const (
	keyboardPrimaryIdle   = 0x14
	keyboardSecondaryIdle = 0x1E
)

// Reader reads fan speeds using one specific firmware protocol.
type Reader interface {
	Strategy() ReadStrategy
	// Read returns the fan speed of channel. Channels the protocol does not
	// cover yield 0 without touching the firmware.
	Read(channel int) (int64, error)
	// HasRpm indicates whether Read yields true RPM values
	HasRpm() bool
}

// NewReader returns the Reader implementing strategy.
func NewReader(strategy ReadStrategy, caller Caller, chip ExternalChip) Reader {
	switch strategy {
	case ReadThermalStatus:
		return &thermalStatusReader{caller: caller}
	case ReadExtendedFanValue:
		return &extendedFanValueReader{caller: caller}
	case ReadFanRpm:
		return &fanRpmReader{caller: caller}
	case ReadKeyboardStyle:
		return &keyboardReader{caller: caller}
	case ReadDecimalSpeed:
		return &decimalSpeedReader{caller: caller}
	case ReadExternalChip:
		return &externalChipReader{chip: chip}
	default:
		return &noneReader{}
	}
}

type noneReader struct{}

func (r *noneReader) Strategy() ReadStrategy { return ReadNone }

func (r *noneReader) HasRpm() bool { return false }

func (r *noneReader) Read(int) (int64, error) {
	return 0, nil
}

// thermalStatusReader returns the raw thermal status value on the primary channel.
type thermalStatusReader struct {
	caller Caller
}

func (r *thermalStatusReader) Strategy() ReadStrategy { return ReadThermalStatus }

func (r *thermalStatusReader) HasRpm() bool { return false }

func (r *thermalStatusReader) Read(channel int) (int64, error) {
	if channel != ChannelPrimary {
		return 0, nil
	}
	return r.caller.Call(firmware.MethodThermalStatus)
}

type extendedFanValueReader struct {
	caller Caller
}

func (r *extendedFanValueReader) Strategy() ReadStrategy { return ReadExtendedFanValue }

func (r *extendedFanValueReader) HasRpm() bool { return false }

func (r *extendedFanValueReader) Read(channel int) (int64, error) {
	if channel != ChannelPrimary && channel != ChannelSecondary {
		return 0, nil
	}
	raw, err := r.caller.CallWithArg(firmware.MethodFanValueExtended, int64(channel+1))
	if err != nil {
		return 0, err
	}
	return RpmFromRaw(raw), nil
}

type fanRpmReader struct {
	caller Caller
}

func (r *fanRpmReader) Strategy() ReadStrategy { return ReadFanRpm }

func (r *fanRpmReader) HasRpm() bool { return true }

func (r *fanRpmReader) Read(channel int) (int64, error) {
	if channel != ChannelPrimary {
		return 0, nil
	}
	return r.caller.Call(firmware.MethodFanRpm)
}

// keyboardReader uses the EC KGFS/KRFS pair, each reporting an idle sentinel
// when the fan is not spinning.
type keyboardReader struct {
	caller Caller
}

func (r *keyboardReader) Strategy() ReadStrategy { return ReadKeyboardStyle }

func (r *keyboardReader) HasRpm() bool { return false }

func (r *keyboardReader) Read(channel int) (int64, error) {
	var method string
	var idle int64
	switch channel {
	case ChannelPrimary:
		method, idle = firmware.MethodEcFanSpeed, keyboardPrimaryIdle
	case ChannelSecondary:
		method, idle = firmware.MethodEcRightFanSpeed, keyboardSecondaryIdle
	default:
		return 0, nil
	}

	speed, err := r.caller.Call(method)
	if err != nil {
		return 0, err
	}
	if speed == idle {
		return 0, nil
	}
	return speed, nil
}

type decimalSpeedReader struct {
	caller Caller
}

func (r *decimalSpeedReader) Strategy() ReadStrategy { return ReadDecimalSpeed }

func (r *decimalSpeedReader) HasRpm() bool { return false }

func (r *decimalSpeedReader) Read(channel int) (int64, error) {
	if channel != ChannelPrimary {
		return 0, nil
	}
	return r.caller.Call(firmware.MethodEcFanSpeedDecimal)
}

type externalChipReader struct {
	chip ExternalChip
}

func (r *externalChipReader) Strategy() ReadStrategy { return ReadExternalChip }

func (r *externalChipReader) HasRpm() bool { return false }

func (r *externalChipReader) Read(channel int) (int64, error) {
	if r.chip == nil || (channel != ChannelPrimary && channel != ChannelSecondary) {
		return 0, nil
	}
	return r.chip.FanSpeed(channel)
}
