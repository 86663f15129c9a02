package spectrum

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/network"
)

// Command creates the spectrum subcommand for listing recent readings.
func Command(settings *conf.Settings) *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "spectrum <detector_id>",
		Short: "List a detector's readings over the trailing window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closeStore, err := network.Open(settings)
			if err != nil {
				return err
			}
			defer closeStore()

			points, err := mgr.Spectrum(args[0], hours)
			if err != nil {
				return err
			}
			for i := range points {
				fmt.Printf("%s  %.1f CPS\n", points[i].Timestamp, points[i].CPS)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 24, "Trailing window in hours")

	return cmd
}
