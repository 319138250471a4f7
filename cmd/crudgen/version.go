package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version подставляется при сборке: -ldflags "-X main.version=v1.2.3"
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the crudgen version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crudgen %s (%s)\n", version, runtime.Version())
		},
	}
}
