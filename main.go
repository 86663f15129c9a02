package main

import (
	"fmt"
	"os"

	"github.com/mkarvonen/neutron-go/cmd"
	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/logging"
)

func main() {
	os.Exit(run())
}

// run keeps deferred cleanup working; os.Exit in main would skip it.
func run() int {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		return 1
	}

	closeLog, err := logging.Init(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error initializing logging: %v\n", err)
		return 1
	}
	defer closeLog()

	if err := cmd.RootCommand(settings).Execute(); err != nil {
		return 1
	}
	return 0
}
