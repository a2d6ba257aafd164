// Package config loads the shape-serve TOML configuration.
package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration file:
//
//	[server]
//	host = "127.0.0.1"
//	port = 8080
//	root = "./public"
//	index = "index.html"
//	read_timeout = 10
//	write_timeout = 10
//
//	[log]
//	level = "debug"
//	file = "log/shape-serve.log"
type Config struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig configures the listener and the document root.
type ServerConfig struct {
	Host  string `toml:"host"`  // empty means all interfaces
	Port  int    `toml:"port"`
	Root  string `toml:"root"`  // document root, required
	Index string `toml:"index"` // file served for directory targets

	ReadTimeout  int `toml:"read_timeout"`  // seconds, per connection
	WriteTimeout int `toml:"write_timeout"` // seconds, per connection
}

// LogConfig configures the zerolog output.
type LogConfig struct {
	Level string `toml:"level"` // trace, debug, info, warn, error
	File  string `toml:"file"`  // empty means console on stderr
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Index == "" {
		c.Server.Index = "index.html"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Server.Root == "" {
		return fmt.Errorf("config: server.root is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("config: timeouts must not be negative")
	}
	return nil
}

// Addr returns the host:port the server binds.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
