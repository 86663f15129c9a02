package anomalies

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/network"
)

// Command creates the anomalies subcommand for scanning detectors whose
// latest reading exceeds three times their baseline.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "Show detectors with anomalous activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closeStore, err := network.Open(settings)
			if err != nil {
				return err
			}
			defer closeStore()

			anomalies, err := mgr.AnomalyScan()
			if err != nil {
				return err
			}
			if len(anomalies) == 0 {
				fmt.Println("No anomalies detected")
				return nil
			}
			for i := range anomalies {
				fmt.Printf("%s | %.1f CPS (%gx baseline)\n",
					anomalies[i].DetectorID, anomalies[i].CurrentCPS, anomalies[i].Multiplier)
			}
			return nil
		},
	}

	return cmd
}
