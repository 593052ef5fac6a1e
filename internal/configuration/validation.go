package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/hpfan/internal/strategy"
	"github.com/markusressel/hpfan/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateFirmware(&config.Firmware)
	if err != nil {
		return err
	}
	err = validateStrategies(config)
	if err != nil {
		return err
	}
	err = validateMonitor(&config.Monitor)
	if err != nil {
		return err
	}
	err = validateServers(config)
	if err != nil {
		return err
	}

	if len(path) > 0 {
		ui.Debug("Configuration at %s is valid", path)
	}
	return nil
}

func validateFirmware(config *FirmwareConfig) error {
	if !slices.Contains(Backends, config.Backend) {
		return fmt.Errorf("firmware: unknown backend '%s', use one of: %s", config.Backend, strings.Join(Backends, " | "))
	}

	switch config.Backend {
	case BackendAcpiCall:
		if len(config.CallPath) <= 0 {
			return errors.New("firmware: callPath must not be empty")
		}
		if len(config.TablesPath) <= 0 {
			return errors.New("firmware: tablesPath must not be empty")
		}
	case BackendSimulated:
		if len(config.Profile) <= 0 {
			return errors.New("firmware: the simulated backend requires a profile")
		}
	}

	return nil
}

func validateStrategies(config *Configuration) error {
	if config.ReadType == strategy.ReadExternalChip || config.CtrlType == strategy.ControlExternalChip {
		ui.Warning("Strategy i2cc requires an external fan chip, fan values will read as 0 and writes are ignored without one")
	}
	switch config.CtrlType {
	case strategy.ControlThermalStatusSet, strategy.ControlKeyboardSet, strategy.ControlKeyboardCurveLoad:
		ui.Warning("Control strategy %s has no known firmware encoding, fan speed requests will be ignored", config.CtrlType)
	}
	return nil
}

func validateMonitor(config *MonitorConfig) error {
	if config.PollingRate <= 0 {
		return fmt.Errorf("monitor: pollingRate must be positive, was %s", config.PollingRate)
	}
	if config.RollingWindowSize <= 0 {
		return fmt.Errorf("monitor: rollingWindowSize must be >= 1, was %d", config.RollingWindowSize)
	}
	return nil
}

func validateServers(config *Configuration) error {
	if config.Statistics.Enabled {
		if err := validatePort("statistics", config.Statistics.Port); err != nil {
			return err
		}
	}
	if config.Api.Enabled {
		if len(config.Api.Host) <= 0 {
			return errors.New("api: host must not be empty")
		}
		if err := validatePort("api", config.Api.Port); err != nil {
			return err
		}
		if config.Statistics.Enabled && config.Statistics.Port == config.Api.Port {
			return fmt.Errorf("api: port %d is already used by statistics", config.Api.Port)
		}
	}
	return nil
}

func validatePort(section string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s: invalid port %d", section, port)
	}
	return nil
}
