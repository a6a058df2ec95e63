package commands

import (
	"strconv"
	"strings"

	"github.com/dyluth/eosc/internal/printer"
	"github.com/dyluth/eosc/pkg/eos"
	"github.com/spf13/cobra"
)

var (
	getCuelist int
	getPart    int
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Query a console target's properties",
}

var getCueCmd = &cobra.Command{
	Use:   "cue <number>",
	Short: "Query a cue's properties",
	Long: `Query the full property record of one cue.

A cue that does not exist produces no reply from the console; that shows
up here as "not found" after the reply timeout.

Examples:
  eosc get cue 10
  eosc get cue 1.5 --cuelist 2 --part 1`,
	Args: cobra.ExactArgs(1),
	RunE: runGetCue,
}

var getGroupCmd = &cobra.Command{
	Use:   "group <number>",
	Short: "Query a group's properties",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetGroup,
}

var getMacroCmd = &cobra.Command{
	Use:   "macro <number>",
	Short: "Query a macro's properties",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetMacro,
}

func init() {
	getCueCmd.Flags().IntVar(&getCuelist, "cuelist", 1, "Cuelist the cue belongs to")
	getCueCmd.Flags().IntVar(&getPart, "part", 0, "Cue part (0 for the whole cue)")
	getCmd.AddCommand(getCueCmd)
	getCmd.AddCommand(getGroupCmd)
	getCmd.AddCommand(getMacroCmd)
	rootCmd.AddCommand(getCmd)
}

func parseTargetNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, printer.Error("Invalid target number", "Expected a number like 10 or 1.5, got: "+s, nil)
	}
	return n, nil
}

func runGetCue(cmd *cobra.Command, args []string) error {
	number, err := parseTargetNumber(args[0])
	if err != nil {
		return err
	}

	client, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	cue := eos.Cue{Cuelist: getCuelist, Number: number, Part: getPart}
	props, err := client.GetCue(cue)
	if err != nil {
		if eos.IsNotFound(err) {
			return printer.Error("Cue not found", "Cue "+cue.Format()+" does not exist on the console.", nil)
		}
		return printer.Error("Failed to query cue", err.Error(), nil)
	}

	printCueProperties(props)
	return nil
}

func runGetGroup(cmd *cobra.Command, args []string) error {
	number, err := parseTargetNumber(args[0])
	if err != nil {
		return err
	}

	client, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	props, err := client.GetGroup(number)
	if err != nil {
		if eos.IsNotFound(err) {
			return printer.Error("Group not found", "Group "+args[0]+" does not exist on the console.", nil)
		}
		return printer.Error("Failed to query group", err.Error(), nil)
	}

	printer.Printf("Group %s  %q\n", args[0], props.Label)
	printer.Printf("  UID:      %s\n", props.UID)
	printer.Printf("  Channels: %s\n", strings.Join(props.Channels, ", "))
	return nil
}

func runGetMacro(cmd *cobra.Command, args []string) error {
	number, err := parseTargetNumber(args[0])
	if err != nil {
		return err
	}

	client, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	props, err := client.GetMacro(number)
	if err != nil {
		if eos.IsNotFound(err) {
			return printer.Error("Macro not found", "Macro "+args[0]+" does not exist on the console.", nil)
		}
		return printer.Error("Failed to query macro", err.Error(), nil)
	}

	printer.Printf("Macro %s  %q (mode %s)\n", args[0], props.Label, props.Mode)
	printer.Printf("  UID:     %s\n", props.UID)
	printer.Printf("  Command: %s\n", strings.Join(props.Command, " "))
	return nil
}

func printCueProperties(p *eos.CueProperties) {
	printer.Printf("Cue %d/%s part %d  %q\n", p.Cuelist, formatFloat(p.Number), p.Part, p.Label)
	printer.Printf("  UID:    %s\n", p.UID)
	printer.Printf("  Up:     %s (delay %s)\n", formatFloat(p.UpTime), formatFloat(p.UpDelay))
	printer.Printf("  Down:   %s (delay %s)\n", formatFloat(p.DownTime), formatFloat(p.DownDelay))
	printer.Printf("  Focus:  %s (delay %s)\n", formatFloat(p.FocusTime), formatFloat(p.FocusDelay))
	printer.Printf("  Color:  %s (delay %s)\n", formatFloat(p.ColorTime), formatFloat(p.ColorDelay))
	printer.Printf("  Beam:   %s (delay %s)\n", formatFloat(p.BeamTime), formatFloat(p.BeamDelay))
	printer.Printf("  Flags:  mark=%q block=%q assert=%q\n", p.Mark, p.Block, p.Assert)
	printer.Printf("  Rate:   %d  Curve: %s  Parts: %d\n", p.Rate, formatFloat(p.Curve), p.PartCount)
	if p.Scene != "" {
		printer.Printf("  Scene:  %s\n", p.Scene)
	}
	if p.Notes != "" {
		printer.Printf("  Notes:  %s\n", p.Notes)
	}
	if len(p.FX) > 0 {
		printer.Printf("  FX:     %s\n", strings.Join(p.FX, " "))
	}
	if len(p.Links) > 0 {
		printer.Printf("  Links:  %s\n", strings.Join(p.Links, " "))
	}
	if len(p.Actions) > 0 {
		printer.Printf("  Actions: %s\n", strings.Join(p.Actions, " "))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
