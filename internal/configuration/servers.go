package configuration

// StatisticsConfig controls the prometheus metrics endpoint.
type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

// ApiConfig controls the REST api serving fan readings and strategy selection.
type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}
