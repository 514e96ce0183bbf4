package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/app"
)

func newCartCmd() *cobra.Command {
	cart := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and edit the cart",
	}
	cart.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart",
			RunE: withApp(func(cmd *cobra.Command, a *app.Application, args []string) error {
				return printCart(cmd.OutOrStdout(), a)
			}),
		},
		&cobra.Command{
			Use:   "add ITEM_ID [QTY]",
			Short: "Add an item (default quantity 1)",
			Args:  cobra.RangeArgs(1, 2),
			RunE: withApp(func(cmd *cobra.Command, a *app.Application, args []string) error {
				qty := 1
				if len(args) == 2 {
					n, err := strconv.Atoi(args[1])
					if err != nil {
						return fmt.Errorf("quantity: %w", err)
					}
					qty = n
				}
				if _, ok := a.Catalog.Find(args[0]); !ok {
					return fmt.Errorf("%w: %s", models.ErrItemNotFound, args[0])
				}
				if err := a.Cart.Add(cmd.Context(), args[0], qty); err != nil {
					return err
				}
				return printCart(cmd.OutOrStdout(), a)
			}),
		},
		&cobra.Command{
			Use:   "set ITEM_ID QTY",
			Short: "Set an item's quantity; 0 removes it",
			Args:  cobra.ExactArgs(2),
			RunE: withApp(func(cmd *cobra.Command, a *app.Application, args []string) error {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("quantity: %w", err)
				}
				if err := a.Cart.SetQuantity(cmd.Context(), args[0], n); err != nil {
					return err
				}
				return printCart(cmd.OutOrStdout(), a)
			}),
		},
		&cobra.Command{
			Use:   "remove ITEM_ID",
			Short: "Remove an item",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(func(cmd *cobra.Command, a *app.Application, args []string) error {
				if err := a.Cart.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				return printCart(cmd.OutOrStdout(), a)
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			RunE: withApp(func(cmd *cobra.Command, a *app.Application, args []string) error {
				a.Cart.Clear(cmd.Context())
				return printCart(cmd.OutOrStdout(), a)
			}),
		},
	)
	return cart
}

// withApp opens the application around fn.
func withApp(fn func(cmd *cobra.Command, a *app.Application, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a, args)
	}
}

func printCart(out io.Writer, a *app.Application) error {
	if a.Cart.IsEmpty() {
		fmt.Fprintln(out, "Cart is empty.")
		return nil
	}

	symbol := config.CurrencySymbol()
	s := a.Cart.Summary(a.Catalog.Items())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tTOTAL")
	for _, l := range s.Lines {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", l.Item.ID, l.Item.Name, l.Quantity, models.FormatPrice(symbol, l.LineTotal))
	}
	fmt.Fprintf(w, "\t\t%d\t%s\n", s.TotalQuantity, models.FormatPrice(symbol, s.Subtotal))
	return w.Flush()
}
