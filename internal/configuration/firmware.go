package configuration

const (
	BackendAcpiCall  = "acpi_call"
	BackendSimulated = "simulated"
)

var Backends = []string{BackendAcpiCall, BackendSimulated}

type FirmwareConfig struct {
	// Backend is one of acpi_call or simulated
	Backend string `json:"backend"`
	// CallPath is the acpi_call proc file
	CallPath string `json:"callPath"`
	// TablesPath is the directory holding the ACPI tables used to resolve method names
	TablesPath string `json:"tablesPath"`
	// Profile is the yaml machine description used by the simulated backend
	Profile string `json:"profile,omitempty"`
}
