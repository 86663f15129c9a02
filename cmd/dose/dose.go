package dose

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/network"
)

// Command creates the dose subcommand for summing recent dose rates.
func Command(settings *conf.Settings) *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "dose <detector_id>",
		Short: "Sum a detector's dose rates over the trailing window",
		Long:  "Print the raw sum of per-reading µSv/h values in the window. Not a time-weighted integral; see the network manager documentation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closeStore, err := network.Open(settings)
			if err != nil {
				return err
			}
			defer closeStore()

			total, err := mgr.Dose(args[0], hours)
			if err != nil {
				return err
			}
			fmt.Printf("%.4f µSv over last %dh (%s)\n", total, hours, network.DoseLevel(total))
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 1, "Trailing window in hours")

	return cmd
}
