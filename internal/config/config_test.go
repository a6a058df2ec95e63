package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eosc.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `host: 10.101.90.101
port: 3032
framing: packet-length
timeout_ms: 5000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.101.90.101", cfg.Host)
	assert.Equal(t, 3032, cfg.Port)
	assert.Equal(t, "packet-length", cfg.Framing)
	assert.Equal(t, 5000, cfg.TimeoutMs)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `host: console.local
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "packet-length", cfg.Framing)
	assert.Equal(t, DefaultTCPPort, cfg.Port)
	assert.Equal(t, DefaultTimeoutMs, cfg.TimeoutMs)
}

func TestLoad_UDPDefaults(t *testing.T) {
	path := writeConfig(t, `host: console.local
framing: udp
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultUDPTXPort, cfg.Port)
	assert.Equal(t, DefaultUDPRXPort, cfg.ReceivePort)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/eosc.yml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `host: console.local
port: [not a
  number
`)

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `host: checked-in.local
port: 3032
`)
	t.Setenv("EOSC_HOST", "venue.local")
	t.Setenv("EOSC_PORT", "3037")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "venue.local", cfg.Host)
	assert.Equal(t, 3037, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing host",
			cfg:     Config{Port: 3032, Framing: "packet-length", TimeoutMs: 2000},
			wantErr: "host is required",
		},
		{
			name:    "port out of range",
			cfg:     Config{Host: "h", Port: 99999, Framing: "packet-length", TimeoutMs: 2000},
			wantErr: "invalid port",
		},
		{
			name:    "unknown framing",
			cfg:     Config{Host: "h", Port: 3032, Framing: "osc1.2", TimeoutMs: 2000},
			wantErr: "invalid framing",
		},
		{
			name:    "udp needs a receive port",
			cfg:     Config{Host: "h", Port: 8000, Framing: "udp", TimeoutMs: 2000},
			wantErr: "invalid receive_port",
		},
		{
			name:    "negative timeout",
			cfg:     Config{Host: "h", Port: 3032, Framing: "packet-length", TimeoutMs: -1},
			wantErr: "timeout_ms",
		},
		{
			name: "valid slip",
			cfg:  Config{Host: "h", Port: 3032, Framing: "slip", TimeoutMs: 2000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFinalize_FlagAssembledConfig(t *testing.T) {
	cfg := Config{Host: "console.local"}
	require.NoError(t, cfg.Finalize())
	assert.Equal(t, DefaultTCPPort, cfg.Port)
	assert.Equal(t, "packet-length", cfg.Framing)
}
