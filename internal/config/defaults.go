package config

// DefaultTypes is the filter applied when a view is first opened: code only.
var DefaultTypes = []string{"t"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:    "symbols.json",
		Types:    DefaultTypes,
		Radius:   450,
		DataDir:  ".symburst",
		Port:     8080,
		LogLevel: LogInfo,
	}
}
