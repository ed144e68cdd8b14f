// ABOUTME: Configuration loading and parsing for chat-probe
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults matching the chat backend's development setup.
const (
	DefaultAuthURL   = "http://localhost:3000"
	DefaultSocketURL = "ws://localhost:9901"

	defaultHandshakeTimeout = 10 * time.Second
	defaultRequestTimeout   = 10 * time.Second
)

// Config represents the complete chat-probe configuration. Every value
// has a working default; the config file is optional and the console can
// override the URLs at runtime.
type Config struct {
	Auth     AuthConfig     `yaml:"auth"`
	Socket   SocketConfig   `yaml:"socket"`
	Logging  LoggingConfig  `yaml:"logging"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
}

// AuthConfig holds the auth service endpoint.
type AuthConfig struct {
	URL string `yaml:"url"`
}

// SocketConfig holds the socket server endpoint.
type SocketConfig struct {
	URL string `yaml:"url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TimeoutsConfig holds network timing configuration.
type TimeoutsConfig struct {
	Handshake time.Duration `yaml:"-"`
	Request   time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	HandshakeRaw string `yaml:"handshake"`
	RequestRaw   string `yaml:"request"`
}

// Default returns a configuration pointing at the backend's development
// addresses.
func Default() *Config {
	return &Config{
		Auth:    AuthConfig{URL: DefaultAuthURL},
		Socket:  SocketConfig{URL: DefaultSocketURL},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Timeouts: TimeoutsConfig{
			Handshake: defaultHandshakeTimeout,
			Request:   defaultRequestTimeout,
		},
	}
}

// Load reads a configuration file from the given path and returns a
// parsed Config. A missing file is not an error: the defaults apply.
// Environment variables in the format ${VAR_NAME} are expanded and
// duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that the configured endpoints are well-formed URLs
// with schemes the transports can use.
func (c *Config) Validate() error {
	if err := checkURL(c.Auth.URL, "auth.url", "http", "https"); err != nil {
		return err
	}
	return checkURL(c.Socket.URL, "socket.url", "ws", "wss")
}

func checkURL(raw, field string, schemes ...string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("%s: unsupported scheme %q", field, u.Scheme)
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Timeouts.HandshakeRaw != "" {
		cfg.Timeouts.Handshake, err = time.ParseDuration(cfg.Timeouts.HandshakeRaw)
		if err != nil {
			return fmt.Errorf("parsing handshake %q: %w", cfg.Timeouts.HandshakeRaw, err)
		}
	}

	if cfg.Timeouts.RequestRaw != "" {
		cfg.Timeouts.Request, err = time.ParseDuration(cfg.Timeouts.RequestRaw)
		if err != nil {
			return fmt.Errorf("parsing request %q: %w", cfg.Timeouts.RequestRaw, err)
		}
	}

	return nil
}
