// mcstatus probes a server and prints its status block.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mcwire/mcwire/client"
	"github.com/mcwire/mcwire/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/client.toml"
	if p := os.Getenv("MCWIRE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	addr, port := cfg.Server.Address, cfg.Server.Port
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}

	info, err := client.ProbeStatus(addr, port)
	if err != nil {
		return fmt.Errorf("probe %s:%d: %w", addr, port, err)
	}

	fmt.Printf("%s:%d\n", addr, port)
	fmt.Printf("  description: %s\n", info.Description.Text)
	fmt.Printf("  version:     %s (protocol %d)\n", info.Version.Name, info.Version.Protocol)
	fmt.Printf("  players:     %d/%d\n", info.Players.Online, info.Players.Max)
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level
	return zapCfg.Build()
}
