package global

import (
	"github.com/markusressel/hpfan/internal/configuration"
	"github.com/markusressel/hpfan/internal/ui"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadConfiguration reads and validates the configuration, --verbose implies debug.
func LoadConfiguration() {
	configuration.ReadConfigFile()
	if Verbose {
		configuration.CurrentConfig.Debug = true
	}
	ui.SetDebugEnabled(configuration.CurrentConfig.Debug)
}
