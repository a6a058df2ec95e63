package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// Global connection flags, honored by every subcommand that talks to a
// console. They override values from eosc.yml.
var (
	cfgFile     string
	flagHost    string
	flagPort    int
	flagFraming string
	flagTimeout int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eosc",
	Short: "eosc - OSC client for ETC Eos lighting consoles",
	Long: `eosc drives an ETC Eos-family lighting console over OSC.

It can query cues, groups and macros, send command lines to the console
command interpreter, emulate key presses, and watch the console's live
state (active cue, show name, user, lock state) as it changes.

The console address is read from eosc.yml, the EOSC_HOST/EOSC_PORT
environment variables, or the --host/--port flags.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to eosc.yml (default: ./eosc.yml if present)")
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "Console address (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 0, "Console port (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagFraming, "framing", "", "Wire framing: packet-length, slip or udp (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Reply timeout in milliseconds (overrides config)")
}
