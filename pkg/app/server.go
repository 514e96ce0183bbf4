package app

import (
	"context"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/server"
)

// Serve listens on APP_PORT until ctx is cancelled, then shuts down
// gracefully.
func (a *Application) Serve(ctx context.Context) error {
	return server.Start(ctx, ":"+config.AppPort(), a.Handler())
}
