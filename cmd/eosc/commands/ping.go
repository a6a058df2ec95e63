package commands

import (
	"github.com/dyluth/eosc/internal/printer"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check console connectivity",
	Long: `Send a ping with a unique token and verify the console echoes it back.

Distinguishes three outcomes: a matching echo (success), no reply at all
(the console is unreachable or OSC RX is disabled), and a reply with the
wrong payload (something else is answering on this address).

Examples:
  eosc ping
  eosc ping --host 10.101.90.101`,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	client, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	token := uuid.New().String()
	if err := client.Ping(token); err != nil {
		return printer.Error("Ping failed", err.Error(), nil)
	}

	printer.Success("Pong! Console is responding.\n")
	return nil
}
