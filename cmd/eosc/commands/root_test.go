package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	want := []string{"ping", "version", "count", "get", "send", "key", "watch"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, cmd.Name())
		})
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "host", "port", "framing", "timeout"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-08-28")
	assert.Equal(t, "1.2.3 (commit: abc123, built: 2026-08-28)", rootCmd.Version)
}

func TestGetCommand_Subcommands(t *testing.T) {
	for _, name := range []string{"cue", "group", "macro"} {
		cmd, _, err := rootCmd.Find([]string{"get", name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
