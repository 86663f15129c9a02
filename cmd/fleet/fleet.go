package fleet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/network"
)

// Command creates the fleet subcommand for printing the fleet status report.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "Show fleet status",
		Long:  "Print one line per detector with at least one stored reading; detectors without readings are omitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closeStore, err := network.Open(settings)
			if err != nil {
				return err
			}
			defer closeStore()

			entries, err := mgr.FleetStatus()
			if err != nil {
				return err
			}
			for i := range entries {
				fmt.Printf("%s | %s @ %s | %.1f CPS | %.4f µSv/h | %s\n",
					entries[i].ID, entries[i].Name, entries[i].Location,
					entries[i].CPS, entries[i].DoseUSvH, entries[i].Status)
			}
			return nil
		},
	}

	return cmd
}
