// Package config loads the TOML configuration used by the example
// binaries. Library consumers pass options directly; nothing in here is
// consulted by the protocol core.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Account AccountConfig `toml:"account"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Address string `toml:"address"`
	Port    uint16 `toml:"port"`
	// Protocol pins the revision (47 or 754); 0 probes the server.
	Protocol int32 `toml:"protocol"`
}

type AccountConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json or console
}

// Load reads path over the defaults. A missing file is not an error;
// the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address: "127.0.0.1",
			Port:    25565,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
