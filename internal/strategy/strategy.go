package strategy

// Caller invokes named firmware methods, see firmware.Gateway.
type Caller interface {
	Call(method string) (int64, error)
	CallWithArg(method string, arg int64) (int64, error)
}

// Prober checks for the existence of named firmware methods, see firmware.Gateway.
type Prober interface {
	Exists(method string) bool
}

// ExternalChip is a fan controller reached over a side-channel bus (e.g. I2C).
// No implementation ships with hpfan, it can be attached by platform specific code.
type ExternalChip interface {
	FanSpeed(channel int) (int64, error)
	SetFanPercent(channel int, percent int64) error
}

const (
	ChannelPrimary   = 0
	ChannelSecondary = 1
)
