package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
)

func newMenuCmd() *cobra.Command {
	menu := &cobra.Command{
		Use:   "menu",
		Short: "Browse and edit the catalog",
	}
	menu.AddCommand(newMenuListCmd(), newMenuCategoriesCmd(), newMenuAddCmd(), newMenuResetCmd())
	return menu
}

func newMenuListCmd() *cobra.Command {
	var f services.Filter
	var sort string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List menu items",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			f.Sort = services.SortMode(sort)
			items := a.Catalog.Query(f)
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No dishes match.")
				return nil
			}
			return printItems(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "match name or description")
	cmd.Flags().StringVarP(&f.Category, "category", "c", "", "only this category")
	cmd.Flags().StringVar(&sort, "sort", "", "price-asc or price-desc")
	return cmd
}

func newMenuCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, c := range a.Catalog.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newMenuAddCmd() *cobra.Command {
	var in services.NewItemInput

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a dish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			in.Name = args[0]
			item, err := a.Catalog.AddItem(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", item.ID, item.Name, models.FormatPrice(config.CurrencySymbol(), item.Price))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&in.Price, "price", "p", 0, "price, must be positive")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "short description")
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "category (default "+models.DefaultCategory+")")
	cmd.Flags().StringVar(&in.Icon, "icon", "", "emoji icon")
	return cmd
}

func newMenuResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the catalog with the default menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset replaces every dish; pass --yes to confirm")
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			a.Catalog.ResetToDefaults(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Menu reset (%d dishes).\n", len(a.Catalog.Items()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

func printItems(out io.Writer, items []models.MenuItem) error {
	symbol := config.CurrencySymbol()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", it.ID, it.Icon, it.Name, it.Category, models.FormatPrice(symbol, it.Price))
	}
	return w.Flush()
}
