package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkarvonen/neutron-go/cmd/anomalies"
	"github.com/mkarvonen/neutron-go/cmd/calibrate"
	"github.com/mkarvonen/neutron-go/cmd/dose"
	"github.com/mkarvonen/neutron-go/cmd/export"
	"github.com/mkarvonen/neutron-go/cmd/fleet"
	"github.com/mkarvonen/neutron-go/cmd/record"
	"github.com/mkarvonen/neutron-go/cmd/register"
	"github.com/mkarvonen/neutron-go/cmd/spectrum"
	"github.com/mkarvonen/neutron-go/cmd/threshold"
	"github.com/mkarvonen/neutron-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "neutron",
		Short:        "Neutron detector network CLI",
		SilenceUsage: true,
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		register.Command(settings),
		record.Command(settings),
		fleet.Command(settings),
		anomalies.Command(settings),
		calibrate.Command(settings),
		threshold.Command(settings),
		dose.Command(settings),
		spectrum.Command(settings),
		export.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Output.SQLite.Path, "database", viper.GetString("output.sqlite.path"), "Path to the SQLite database file (empty for the per-user default)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
