package seeders

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/kv"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

func TestMenuSeederRestoresDefaults(t *testing.T) {
	logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(nil) })

	ctx := context.Background()
	a, err := app.New(ctx, kv.NewMemory(), app.WithKeyPrefix("seed_"))
	require.NoError(t, err)

	_, err = a.Catalog.AddItem(ctx, services.NewItemInput{Name: "Lemonade", Price: 2})
	require.NoError(t, err)
	require.Len(t, a.Catalog.Items(), 7)

	var out bytes.Buffer
	require.NoError(t, Run(ctx, a, &out, "menu"))

	assert.Len(t, a.Catalog.Items(), 6)
	assert.Contains(t, out.String(), "Running seeder: menu … done")
	assert.Contains(t, Names(), "menu")

	assert.Error(t, Run(ctx, a, &out, "users"))
}
