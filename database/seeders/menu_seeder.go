package seeders

import (
	"context"

	"github.com/shashiranjanraj/storefront/pkg/app"
)

func init() {
	Register("menu", seedMenu)
}

// seedMenu restores the default catalog.
func seedMenu(ctx context.Context, a *app.Application) error {
	a.Catalog.ResetToDefaults(ctx)
	return nil
}
