// Package config provides Viper-based configuration loading for the
// lobby server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP/WebSocket listener settings.
type ServerConfig struct {
	// Host is the bind address for the listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the listener.
	Port int `mapstructure:"port"`
	// StaticDir is the directory served at the root path; the client
	// application entry document lives there.
	StaticDir string `mapstructure:"static_dir"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RoomConfig holds room lifecycle settings.
type RoomConfig struct {
	// Capacity is the fixed maximum participant count per room.
	Capacity int `mapstructure:"capacity"`
	// GracePeriod is the window after a disconnect during which a seat is
	// preserved for reconnection.
	GracePeriod time.Duration `mapstructure:"grace_period"`
	// IDLength is the length of generated room identifiers.
	IDLength int `mapstructure:"id_length"`
}

// WSConfig holds per-connection WebSocket settings.
type WSConfig struct {
	// ReadLimit is the maximum inbound frame size in bytes.
	ReadLimit int64 `mapstructure:"read_limit"`
	// WriteTimeout is the per-write deadline.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// PingInterval is the control-ping cadence; a peer missing two
	// consecutive pings fails its read deadline.
	PingInterval time.Duration `mapstructure:"ping_interval"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Room    RoomConfig    `mapstructure:"room"`
	WS      WSConfig      `mapstructure:"ws"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRoom(c.Room); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateWS(c.WS); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", s.Port))
	}
	if s.StaticDir == "" {
		errs = append(errs, "server.static_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRoom(r RoomConfig) error {
	var errs []string
	if r.Capacity < 1 {
		errs = append(errs, fmt.Sprintf("room.capacity must be >= 1, got %d", r.Capacity))
	}
	if r.GracePeriod <= 0 {
		errs = append(errs, fmt.Sprintf("room.grace_period must be > 0, got %s", r.GracePeriod))
	}
	if r.IDLength < 4 {
		errs = append(errs, fmt.Sprintf("room.id_length must be >= 4, got %d", r.IDLength))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateWS(w WSConfig) error {
	var errs []string
	if w.ReadLimit < 1 {
		errs = append(errs, fmt.Sprintf("ws.read_limit must be >= 1, got %d", w.ReadLimit))
	}
	if w.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ws.write_timeout must be > 0, got %s", w.WriteTimeout))
	}
	if w.PingInterval <= 0 {
		errs = append(errs, fmt.Sprintf("ws.ping_interval must be > 0, got %s", w.PingInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with LOBBY_ prefix,
	// e.g. LOBBY_SERVER_PORT=8080.
	v.SetEnvPrefix("LOBBY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.static_dir", "web")

	v.SetDefault("room.capacity", 4)
	v.SetDefault("room.grace_period", "60s")
	v.SetDefault("room.id_length", 6)

	v.SetDefault("ws.read_limit", 1<<20)
	v.SetDefault("ws.write_timeout", "5s")
	v.SetDefault("ws.ping_interval", "15s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
