package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title Nostalgia Jars API
// @version 1.0
// @description Storefront API: catalog, basket, session and flavour quiz
// @host localhost:8443
// @BasePath /
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "nostalgiajars",
		Short:        "Nostalgia Jars storefront",
		Long:         "Serves the Nostalgia Jars pickle storefront: catalog, basket, sign-in and flavour quiz.",
		SilenceUsage: true,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newCatalogCommand())
	return cmd
}
