package calibrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/network"
)

// Command creates the calibrate subcommand, which resets a detector's
// baseline to its 24-hour CPS average.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate <detector_id>",
		Short: "Reset a detector's baseline to its 24h average",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closeStore, err := network.Open(settings)
			if err != nil {
				return err
			}
			defer closeStore()

			baseline, err := mgr.Calibrate(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("New baseline: %.2f CPS\n", baseline)
			return nil
		},
	}

	return cmd
}
