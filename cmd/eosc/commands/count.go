package commands

import (
	"github.com/dyluth/eosc/internal/printer"
	"github.com/spf13/cobra"
)

var countCuelist int

var countCmd = &cobra.Command{
	Use:   "count <target-type>",
	Short: "Count targets of a given type",
	Long: `Count how many targets of the given type exist on the console.

Valid target types: patch, cuelist, cue, group, macro, sub, preset, ip,
fp, cp, bp, curve, fx, snap, pixmap, ms.

Cue counts are per cuelist; pick one with --cuelist.

Examples:
  eosc count group
  eosc count cue --cuelist 2`,
	Args: cobra.ExactArgs(1),
	RunE: runCount,
}

func init() {
	countCmd.Flags().IntVar(&countCuelist, "cuelist", 1, "Cuelist to count cues in (target type 'cue' only)")
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	client, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	count, err := client.TargetCount(args[0], countCuelist)
	if err != nil {
		return printer.Error("Failed to count targets", err.Error(), nil)
	}

	printer.Printf("%d\n", count)
	return nil
}
