package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/app"
)

// storefront checkout: place an order from the cart.
func newCheckoutCmd() *cobra.Command {
	var in services.CheckoutInput

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the cart",
		RunE: withApp(func(cmd *cobra.Command, a *app.Application, args []string) error {
			order, err := a.Orders.PlaceOrder(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed for %s: %s\n",
				order.ID, order.Customer.Name, models.FormatPrice(config.CurrencySymbol(), order.Total))
			return nil
		}),
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&in.Address, "address", "", "delivery address")
	return cmd
}
