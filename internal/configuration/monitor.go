package configuration

import "time"

type MonitorConfig struct {
	PollingRate       time.Duration `json:"pollingRate"`
	RollingWindowSize int           `json:"rollingWindowSize"`
	// ExportPath is a directory receiving hwmon style attribute files, empty disables the export
	ExportPath string `json:"exportPath,omitempty"`
}
