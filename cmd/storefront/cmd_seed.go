package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/app"
)

// storefront seed [name...]
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [name...]",
		Short: "Run data seeders (all when no name is given)",
		RunE: withApp(func(cmd *cobra.Command, a *app.Application, args []string) error {
			return seeders.Run(cmd.Context(), a, cmd.OutOrStdout(), args...)
		}),
	}
}
