package commands

import (
	"time"

	"github.com/dyluth/eosc/internal/printer"
	"github.com/dyluth/eosc/pkg/eos"
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key <name...>",
	Short: "Press one or more console keys",
	Long: `Emulate console key presses, in order.

Key names follow the console's OSC key map, e.g. Blind, Live, Go_0,
Stop, at, Enter, softkey_1.

Examples:
  eosc key Blind
  eosc key 1 at 50 Enter`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	client, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	for i, key := range args {
		if i > 0 {
			// The console debounces key events; pressing faster drops them.
			time.Sleep(eos.DefaultKeyDelay)
		}
		if err := client.PressKey(key); err != nil {
			return printer.Error("Failed to press key", err.Error(), nil)
		}
	}

	printer.Success("Pressed %d key(s)\n", len(args))
	return nil
}
