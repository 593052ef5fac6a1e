package strategy

const (
	rawNoReading  = 0x00
	rawInvalid    = 0xFF
	rpmConversion = 0x0003C000
)

// RpmFromRaw converts a raw decimal fan value (FRDC encoding) to RPM.
func RpmFromRaw(raw int64) int64 {
	if raw == rawNoReading || raw == rawInvalid {
		return 0
	}
	return (rpmConversion + (raw >> 1)) / raw
}

// ClampPercent limits a requested fan speed to at most 100 percent.
func ClampPercent(percent int64) int64 {
	if percent > 100 {
		return 100
	}
	return percent
}
