package commands

import (
	"github.com/dyluth/eosc/internal/printer"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the console's software version",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	client, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	v, err := client.Version()
	if err != nil {
		return printer.Error("Failed to query console version", err.Error(), nil)
	}

	printer.Printf("Eos v%s\n", v)
	return nil
}
