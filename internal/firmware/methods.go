package firmware

// Firmware object paths known on HP laptops. The exact semantics of several
// of these are inferred from their names only.
const (
	MethodThermalStatus    = `\_TZ.GTMM`
	MethodFanValueExtended = `\_TZ.GFVE`
	MethodTargetFanValue   = `\_TZ.GTFV`
	MethodFanRpm           = `\_TZ.GFRM`
	MethodTargetFanRpm     = `\_TZ.GTRM`
	MethodFanSpeedDecimal  = `\_TZ.GFSD`

	MethodEcFanSpeedDecimal    = `\_SB.PCI0.LPCB.EC0.GFSD`
	MethodEcFanSpeed           = `\_SB.PCI0.LPCB.EC0.KGFS`
	MethodEcRightFanSpeed      = `\_SB.PCI0.LPCB.EC0.KRFS`
	MethodEcSetFanSpeedDecimal = `\_SB.PCI0.LPCB.EC0.SFSD`

	ValueMaxRpm          = `\_TZ.MRPM`
	ValueFan0            = `\_TZ.FRDC`
	ValueFan1            = `\_TZ.FR2C`
	ValueFan0Target      = `\_TZ.FTDC`
	ValueFan1Target      = `\_TZ.FT2C`
	ValueEcFanAlwaysOnAc = `\_SB.PCI0.LPCB.EC0.MFAC`
)

// KnownMethods lists every firmware object hpfan may touch, in display order.
var KnownMethods = []string{
	MethodThermalStatus,
	MethodFanValueExtended,
	MethodTargetFanValue,
	MethodFanRpm,
	MethodTargetFanRpm,
	MethodFanSpeedDecimal,
	MethodEcFanSpeedDecimal,
	MethodEcFanSpeed,
	MethodEcRightFanSpeed,
	MethodEcSetFanSpeedDecimal,
	ValueMaxRpm,
	ValueFan0,
	ValueFan1,
	ValueFan0Target,
	ValueFan1Target,
	ValueEcFanAlwaysOnAc,
}
