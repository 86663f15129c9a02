package record

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/network"
)

// Command creates the record subcommand for ingesting one reading.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <detector_id> <cps>",
		Short: "Record a reading from a detector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cps, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid cps value %q: %w", args[1], err)
			}

			mgr, closeStore, err := network.Open(settings)
			if err != nil {
				return err
			}
			defer closeStore()

			reading, err := mgr.RecordReading(args[0], cps)
			if err != nil {
				return err
			}

			alertStr := ""
			if reading.AlertTriggered {
				alertStr = " [ALERT]"
			}
			fmt.Printf("Recorded: %.1f CPS → %.4f µSv/h%s\n", reading.CPS, reading.DoseUSvH, alertStr)
			return nil
		},
	}

	return cmd
}
