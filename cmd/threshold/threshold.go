package threshold

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/network"
)

// Command creates the threshold subcommand for setting a detector's alert
// threshold.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threshold <detector_id> <cps>",
		Short: "Set the alert threshold for a detector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alertCPS, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid cps value %q: %w", args[1], err)
			}

			mgr, closeStore, err := network.Open(settings)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := mgr.SetThreshold(args[0], alertCPS); err != nil {
				return err
			}
			fmt.Printf("Alert threshold for %s set to %.1f CPS\n", args[0], alertCPS)
			return nil
		},
	}

	return cmd
}
