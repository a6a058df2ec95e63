package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/eosc/internal/printer"
	"github.com/dyluth/eosc/pkg/eos"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch live console state",
	Long: `Subscribe to the console's push notifications and print state
changes as they arrive: active/pending cue, show name, user, and lock
state. Press Ctrl+C to stop.

Examples:
  eosc watch
  eosc watch --host 10.101.90.101`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	var last eos.ConsoleState

	client, err := connect(eos.WithStateChangeFunc(func(s eos.ConsoleState) {
		printStateChanges(last, s)
		last = s
	}))
	if err != nil {
		return err
	}
	defer client.Close()

	printer.Step("Watching console state (Ctrl+C to stop)...\n")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-stop:
			printer.Println()
			printer.Info("Stopped.\n")
			return nil
		default:
			if err := client.Pump(500 * time.Millisecond); err != nil {
				return printer.Error("Connection lost", err.Error(), nil)
			}
		}
	}
}

func printStateChanges(prev, cur eos.ConsoleState) {
	stamp := time.Now().Format("15:04:05")
	if prev.ShowName != cur.ShowName {
		printer.Printf("%s  show   %q\n", stamp, cur.ShowName)
	}
	if prev.User != cur.User {
		printer.Printf("%s  user   %d\n", stamp, cur.User)
	}
	// Cue identities are compared by their rendered form: the pointer
	// fields inside Cue get fresh allocations on every notification.
	if formatWatchCue(prev.ActiveCue) != formatWatchCue(cur.ActiveCue) {
		printer.Printf("%s  active  cue %s\n", stamp, formatWatchCue(cur.ActiveCue))
	}
	if formatWatchCue(prev.PendingCue) != formatWatchCue(cur.PendingCue) {
		printer.Printf("%s  pending cue %s\n", stamp, formatWatchCue(cur.PendingCue))
	}
	if formatWatchCue(prev.PreviousCue) != formatWatchCue(cur.PreviousCue) {
		printer.Printf("%s  previous cue %s\n", stamp, formatWatchCue(cur.PreviousCue))
	}
	if prev.State != cur.State {
		mode := "blind"
		if cur.State != 0 {
			mode = "live"
		}
		printer.Printf("%s  mode   %s\n", stamp, mode)
	}
	if prev.Locked != cur.Locked {
		if cur.Locked {
			printer.Warning("%s  console locked\n", stamp)
		} else {
			printer.Printf("%s  console unlocked\n", stamp)
		}
	}
}

func formatWatchCue(c eos.Cue) string {
	s := c.Format()
	if c.Percentage != nil {
		s += " (" + formatFloat(*c.Percentage*100) + "%)"
	}
	return s
}
