// Package config loads the SAP connection configuration from the environment
// and an optional config file.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the server needs to talk to one SAP system.
type Config struct {
	// BaseURL is the root URL of the SAP system, e.g. https://host:44300
	BaseURL  string `json:"url" mapstructure:"url"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	// Client is the SAP client number, e.g. "100"
	Client string `json:"client" mapstructure:"client"`

	// TimeoutMs is the default per-request timeout in milliseconds
	TimeoutMs int `json:"timeoutMs" mapstructure:"timeoutMs"`
	// TLSInsecure accepts self-signed certificates from the SAP system
	TLSInsecure bool `json:"tlsInsecure" mapstructure:"tlsInsecure"`
	// RawMode returns unmodified ADT payloads instead of normalized JSON
	RawMode bool `json:"rawMode" mapstructure:"rawMode"`

	// HTTPAddr is the listen address for the HTTP transport (serve --http)
	HTTPAddr string `json:"httpAddr" mapstructure:"httpAddr"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TimeoutMs: 45000,
		HTTPAddr:  ":3000",
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// Load reads configuration from environment variables (SAP_URL, SAP_USERNAME,
// SAP_PASSWORD, SAP_CLIENT, SAP_TIMEOUT_MS, SAP_TLS_INSECURE, SAP_RAW_MODE,
// SAP_HTTP_ADDR) and, when configPath is non-empty, a config file that the
// environment overrides. Required fields are validated together so a single
// error names every missing one.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("timeoutMs", 45000)
	v.SetDefault("httpAddr", ":3000")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("SAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so the
	// required fields are bound explicitly.
	_ = v.BindEnv("url", "SAP_URL")
	_ = v.BindEnv("username", "SAP_USERNAME")
	_ = v.BindEnv("password", "SAP_PASSWORD")
	_ = v.BindEnv("client", "SAP_CLIENT")
	_ = v.BindEnv("timeoutMs", "SAP_TIMEOUT_MS")
	_ = v.BindEnv("tlsInsecure", "SAP_TLS_INSECURE")
	_ = v.BindEnv("rawMode", "SAP_RAW_MODE")
	_ = v.BindEnv("httpAddr", "SAP_HTTP_ADDR")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// The partially loaded config is returned alongside a validation error
	// so callers with another source for the missing fields (a destinations
	// file) can still use what the environment provided.
	if err := cfg.Validate(); err != nil {
		return &cfg, err
	}

	return &cfg, nil
}

// Validate checks that every required connection field is present. All
// missing fields are reported in one error, never just the first.
func (c *Config) Validate() error {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, "SAP_URL")
	}
	if c.Username == "" {
		missing = append(missing, "SAP_USERNAME")
	}
	if c.Password == "" {
		missing = append(missing, "SAP_PASSWORD")
	}
	if c.Client == "" {
		missing = append(missing, "SAP_CLIENT")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// ConfigError reports missing required configuration fields.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}
