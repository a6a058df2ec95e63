// Package config loads and validates the eosc.yml session configuration:
// where the console lives and how to frame the OSC stream.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dyluth/eosc/pkg/osc"
	"gopkg.in/yaml.v3"
)

// Default console ports: 3032 for OSC over TCP, 8000/8001 for UDP.
const (
	DefaultTCPPort    = 3032
	DefaultUDPTXPort  = 8000
	DefaultUDPRXPort  = 8001
	DefaultTimeoutMs  = 2000
	DefaultConfigFile = "eosc.yml"
)

// Config represents the top-level eosc.yml configuration.
type Config struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port,omitempty"`
	Framing     string `yaml:"framing"`                // "packet-length", "slip" or "udp"
	ReceivePort int    `yaml:"receive_port,omitempty"` // UDP only: local port for replies
	TimeoutMs   int    `yaml:"timeout_ms,omitempty"`
}

// Load reads and validates a config file. Environment variables
// EOSC_HOST and EOSC_PORT override the file's values, so a checked-in
// config can point at a venue console without editing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize applies defaults and validates. Exposed so configurations
// assembled from flags instead of a file go through the same checks.
func (c *Config) Finalize() error {
	c.applyDefaults()
	return c.Validate()
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("EOSC_HOST"); host != "" {
		c.Host = host
	}
	if port := os.Getenv("EOSC_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Port = p
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Framing == "" {
		c.Framing = "packet-length"
	}
	if c.Port == 0 {
		if c.Framing == "udp" {
			c.Port = DefaultUDPTXPort
		} else {
			c.Port = DefaultTCPPort
		}
	}
	if c.ReceivePort == 0 {
		c.ReceivePort = DefaultUDPRXPort
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = DefaultTimeoutMs
	}
}

// Validate performs strict validation on the configuration.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required (set it in %s or via EOSC_HOST)", DefaultConfigFile)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d (must be 1-65535)", c.Port)
	}
	switch c.Framing {
	case "packet-length", "slip", "udp":
	default:
		return fmt.Errorf("invalid framing %q (must be 'packet-length', 'slip' or 'udp')", c.Framing)
	}
	if c.Framing == "udp" && (c.ReceivePort < 1 || c.ReceivePort > 65535) {
		return fmt.Errorf("invalid receive_port %d (must be 1-65535)", c.ReceivePort)
	}
	if c.TimeoutMs < 0 {
		return fmt.Errorf("timeout_ms must be >= 0, got %d", c.TimeoutMs)
	}
	return nil
}

// Dial opens the console connection the configuration describes.
func (c *Config) Dial() (osc.Conn, error) {
	if c.Framing == "udp" {
		return osc.DialUDP(c.Host, c.Port, c.ReceivePort)
	}
	framing, err := osc.ParseFraming(c.Framing)
	if err != nil {
		return nil, err
	}
	return osc.DialTCP(fmt.Sprintf("%s:%d", c.Host, c.Port), framing)
}
