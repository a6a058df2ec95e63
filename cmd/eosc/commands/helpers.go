package commands

import (
	"os"
	"time"

	"github.com/dyluth/eosc/internal/config"
	"github.com/dyluth/eosc/internal/printer"
	"github.com/dyluth/eosc/pkg/eos"
)

// resolveConfig builds the effective session configuration from the
// config file (when present), environment variables, and command-line
// flags, in increasing order of precedence.
func resolveConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(config.DefaultConfigFile); err == nil {
			path = config.DefaultConfigFile
		}
	}

	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, printer.Error("Failed to load configuration", err.Error(), nil)
		}
		cfg = loaded
	} else {
		cfg = &config.Config{Host: os.Getenv("EOSC_HOST")}
	}

	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagPort != 0 {
		cfg.Port = flagPort
	}
	if flagFraming != "" {
		cfg.Framing = flagFraming
	}
	if flagTimeout != 0 {
		cfg.TimeoutMs = flagTimeout
	}

	if err := cfg.Finalize(); err != nil {
		return nil, printer.Error("Invalid configuration", err.Error(), []string{
			"Create an eosc.yml with at least a 'host' entry",
			"Or pass --host <console-address>",
		})
	}
	return cfg, nil
}

// connect dials the configured console and opens a client session.
// Callers must Close the returned client.
func connect(opts ...eos.Option) (*eos.Client, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	conn, err := cfg.Dial()
	if err != nil {
		return nil, printer.Error("Failed to connect to console", err.Error(), []string{
			"Check that the console is reachable and OSC RX is enabled",
		})
	}

	clientOpts := append([]eos.Option{
		eos.WithTimeout(time.Duration(cfg.TimeoutMs) * time.Millisecond),
		eos.WithSource("eosc"),
	}, opts...)

	client, err := eos.NewClient(conn, clientOpts...)
	if err != nil {
		conn.Close()
		return nil, printer.Error("Failed to open console session", err.Error(), nil)
	}
	return client, nil
}
