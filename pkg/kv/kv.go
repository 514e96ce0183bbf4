// Package kv provides the durable key-value stores the storefront records
// are persisted to.
//
// Drivers available:
//   - "memory" : process memory (tests, throwaway sessions)
//   - "file"   : one file per key under a root directory (default)
//   - "sqlite", "postgres", "mysql", "sqlserver": a kv_records table via GORM
//   - "redis"  : plain GET/SET
//   - "s3"     : one object per key (AWS S3, MinIO, R2, Spaces)
//   - "mongo"  : one document per key
//
// Pick one with STORE_DRIVER and open it with Open:
//
//	store, err := kv.Open(ctx)
//	defer store.Close()
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is the driver interface. Every driver must implement this.
type Store interface {
	// Get returns the raw value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Returns nil if the key did not exist.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the driver.
	Close() error
}

// ValidateKey rejects keys that cannot be mapped onto every backend.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("kv: empty key")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	return nil
}
