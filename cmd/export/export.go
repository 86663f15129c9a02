package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/network"
)

// Command creates the export subcommand for writing a detector's NDF
// artifact.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <detector_id> <output_path>",
		Short: "Export a detector's history in Neutron Data Format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closeStore, err := network.Open(settings)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := mgr.Export(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Exported detector %s to %s\n", args[0], args[1])
			return nil
		},
	}

	return cmd
}
