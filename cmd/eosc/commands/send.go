package commands

import (
	"strings"

	"github.com/dyluth/eosc/internal/printer"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <commandline...>",
	Short: "Send a command line to the console",
	Long: `Send a full command line to the console command interpreter.

The line must follow console syntax, including the '#' terminator that
executes it. Quote the line or pass it as separate words.

Examples:
  eosc send "Cue 1 / 10 Label Blackout #"
  eosc send Group 5 Label Stage Wash #`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	client, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	commandline := strings.Join(args, " ")
	if err := client.SendCommand(commandline); err != nil {
		return printer.Error("Failed to send command", err.Error(), nil)
	}

	printer.Success("Sent: %s\n", commandline)
	return nil
}
