package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var driver, prefix string

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront: menu, cart and checkout backed by a key-value store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			if driver != "" {
				config.Set("STORE_DRIVER", driver)
			}
			if cmd.Flags().Changed("prefix") {
				config.Set("STORE_KEY_PREFIX", prefix)
			}
			// Keep stdout for command output.
			logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&driver, "driver", "", "store driver (memory, file, sqlite, postgres, mysql, sqlserver, redis, s3, mongo)")
	root.PersistentFlags().StringVar(&prefix, "prefix", "", "record key prefix")

	root.AddCommand(
		newServeCmd(),
		newRouteListCmd(),
		newMenuCmd(),
		newCartCmd(),
		newCheckoutCmd(),
		newSeedCmd(),
	)
	return root
}

// openApp connects the configured store. Callers must Close the result.
func openApp(cmd *cobra.Command) (*app.Application, error) {
	return app.Open(cmd.Context())
}
