package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFilesPrecedence(t *testing.T) {
	_ = Load()
	dir := t.TempDir()

	jsonPath := writeFile(t, dir, "app.json", `{"store_driver": "redis", "app_port": "9000", "ignored": 12}`)
	envPath := writeFile(t, dir, ".env", "# comment\nAPP_PORT=9100\nCURRENCY_SYMBOL=\"€\"\n")
	t.Setenv("APP_ENV", "production")

	require.NoError(t, loadFromFiles(jsonPath, envPath))

	assert.Equal(t, "redis", StoreDriver())
	assert.Equal(t, "9100", AppPort(), ".env overrides app.json")
	assert.Equal(t, "€", CurrencySymbol())
	assert.Equal(t, "production", AppEnv(), "environment overrides files")
}

func TestLoadFromFilesMissingIsNotAnError(t *testing.T) {
	_ = Load()
	dir := t.TempDir()

	require.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, ".env")))
	assert.Equal(t, defaultStoreDriver, StoreDriver())
	assert.Equal(t, defaultStoreKeyPrefix, StoreKeyPrefix())
}

func TestLoadFromFilesBadJSON(t *testing.T) {
	_ = Load()
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{not json`)

	err := loadFromFiles(jsonPath, filepath.Join(dir, ".env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestStoreDriverFallsBackOnUnknown(t *testing.T) {
	_ = Load()
	Set("STORE_DRIVER", "cassandra")
	t.Cleanup(func() { Set("STORE_DRIVER", defaultStoreDriver) })

	assert.Equal(t, defaultStoreDriver, StoreDriver())
}

func TestDatabaseDSNPerDriver(t *testing.T) {
	_ = Load()
	t.Cleanup(func() {
		Set("STORE_DRIVER", defaultStoreDriver)
		Set("DATABASE_DSN", "")
	})

	Set("STORE_DRIVER", "postgres")
	assert.Equal(t, defaultPostgresDSN, DatabaseDSN())

	Set("DATABASE_DSN", "file::memory:")
	assert.Equal(t, "file::memory:", DatabaseDSN())
}
