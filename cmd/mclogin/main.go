// mclogin authenticates an account, joins a server and runs a minimal
// event loop that answers keep-alives until disconnected.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mcwire/mcwire/auth"
	"github.com/mcwire/mcwire/client"
	"github.com/mcwire/mcwire/internal/config"
	"github.com/mcwire/mcwire/protocol"
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

	session, err := auth.Authenticate(cfg.Account.Username, cfg.Account.Password)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	log.Info("authenticated", zap.String("profile", session.ProfileName()))

	c, err := client.NewClient(
		cfg.Server.Address,
		cfg.Server.Port,
		protocol.Version(cfg.Server.Protocol),
		log,
	)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.ConnectUser(session); err != nil {
		return fmt.Errorf("connect user: %w", err)
	}

	for {
		ev, err := c.ReadEvent()
		if err != nil {
			var disc *client.DisconnectedError
			if errors.As(err, &disc) {
				log.Info("server closed the session", zap.String("reason", disc.Reason.Text))
				return nil
			}
			return err
		}
		switch e := ev.(type) {
		case protocol.KeepAlive:
			if err := c.RespondKeepAlive(e); err != nil {
				return err
			}
		case protocol.Disconnect:
			log.Info("server closed the session", zap.String("reason", e.Reason.Text))
			return nil
		case protocol.JoinGame:
			log.Info("joined world",
				zap.Int32("entity", e.EntityID),
				zap.Stringer("gamemode", e.Gamemode),
			)
		case protocol.PlayerPositionAndLook:
			log.Debug("teleported",
				zap.Float64("x", e.X.Value),
				zap.Float64("y", e.Y.Value),
				zap.Float64("z", e.Z.Value),
			)
		default:
			log.Debug("event", zap.String("type", fmt.Sprintf("%T", ev)))
		}
	}
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
