package internal

import (
	"fmt"

	"github.com/markusressel/hpfan/internal/configuration"
	"github.com/markusressel/hpfan/internal/firmware"
	"github.com/spf13/afero"
)

// CreateFirmware returns the firmware backend selected by config.
func CreateFirmware(config configuration.FirmwareConfig) (firmware.Interface, error) {
	switch config.Backend {
	case configuration.BackendAcpiCall:
		resolver := firmware.NewTableResolver(afero.NewOsFs(), config.TablesPath)
		return firmware.NewAcpiCall(config.CallPath, resolver), nil
	case configuration.BackendSimulated:
		profile, err := firmware.LoadSimulatedProfile(config.Profile)
		if err != nil {
			return nil, err
		}
		return firmware.NewSimulated(*profile), nil
	default:
		return nil, fmt.Errorf("unknown firmware backend: %s", config.Backend)
	}
}
