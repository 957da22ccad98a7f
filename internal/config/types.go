package config

// LogLevel controls logger verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level symburst configuration, corresponding to .symburst.yml.
type Config struct {
	Input           string   `yaml:"input" koanf:"input"`
	App             string   `yaml:"app" koanf:"app"` // root label override
	Types           []string `yaml:"types" koanf:"types"`
	Exclude         []string `yaml:"exclude" koanf:"exclude"`
	Radius          float64  `yaml:"radius" koanf:"radius"`
	DataDir         string   `yaml:"data_dir" koanf:"data_dir"`
	Port            int      `yaml:"port" koanf:"port"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel        LogLevel `yaml:"log_level" koanf:"log_level"`
}
