package configuration

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/markusressel/hpfan/internal/strategy"
	"github.com/markusressel/hpfan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	Debug bool `json:"debug"`

	// ReadType selects the fan speed read protocol, unset means auto-detection
	ReadType strategy.ReadStrategy `json:"readType"`
	// CtrlType selects the fan control protocol, unset means auto
	CtrlType strategy.ControlStrategy `json:"ctrlType"`

	DbPath string `json:"dbPath"`

	Firmware   FirmwareConfig   `json:"firmware"`
	Monitor    MonitorConfig    `json:"monitor"`
	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("hpfan")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/hpfan/")
	}

	viper.SetEnvPrefix("hpfan")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues(viper.GetViper())
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("readType", "")
	v.SetDefault("ctrlType", "")
	v.SetDefault("dbpath", "/etc/hpfan/hpfan.db")

	v.SetDefault("firmware.backend", BackendAcpiCall)
	v.SetDefault("firmware.callPath", "/proc/acpi/call")
	v.SetDefault("firmware.tablesPath", "/sys/firmware/acpi/tables")
	v.SetDefault("firmware.profile", "")

	v.SetDefault("monitor.pollingRate", 1*time.Second)
	v.SetDefault("monitor.rollingWindowSize", 10)
	v.SetDefault("monitor.exportPath", "")

	v.SetDefault("statistics.enabled", false)
	v.SetDefault("statistics.port", 9000)

	v.SetDefault("api.enabled", false)
	v.SetDefault("api.host", "localhost")
	v.SetDefault("api.port", 8080)
}

// ReadConfigFile loads the config file if one exists and validates the result.
// Without a config file all values fall back to their defaults.
func ReadConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			ui.Fatal("Error reading config file, %s", err)
		}
		ui.Info("No configuration file found, using defaults")
	} else {
		// this is only populated _after_ ReadInConfig()
		ui.Info("Using configuration file at: %s", viper.ConfigFileUsed())
	}

	LoadConfig()
	if err := Validate(viper.ConfigFileUsed()); err != nil {
		ui.Fatal("Config Validation Error: %v", err)
	}
}

func LoadConfig() {
	config, err := decodeConfig(viper.GetViper())
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	CurrentConfig = config
}

func decodeConfig(v *viper.Viper) (Configuration, error) {
	config := Configuration{}
	err := v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		ReadStrategyHookFunc(),
		ControlStrategyHookFunc(),
	)))
	return config, err
}
