package register

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/network"
)

// Command creates the register subcommand for adding a new detector unit.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		name        string
		location    string
		detType     string
		sensitivity float64
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new detector unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closeStore, err := network.Open(settings)
			if err != nil {
				return err
			}
			defer closeStore()

			id, err := mgr.Register(name, location, detType, sensitivity)
			if err != nil {
				return err
			}
			fmt.Printf("Registered detector %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the detector")
	cmd.Flags().StringVar(&location, "location", "", "Location label for the detector")
	cmd.Flags().StringVar(&detType, "type", "", "Detector type (he3_tube, boron_lined, scintillator, fission_chamber, activation_foil)")
	cmd.Flags().Float64Var(&sensitivity, "sensitivity", 1.0, "Detector sensitivity factor")

	return cmd
}
