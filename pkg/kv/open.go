package kv

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/storefront/config"
)

// Open builds the store selected by STORE_DRIVER.
func Open(ctx context.Context) (Store, error) {
	return OpenDriver(ctx, config.StoreDriver())
}

// OpenDriver builds the named store using the remaining configuration.
func OpenDriver(ctx context.Context, driver string) (Store, error) {
	switch driver {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(config.StoreFileRoot())
	case "sqlite", "postgres", "mysql", "sqlserver":
		return NewSQL(driver, config.DatabaseDSN())
	case "redis":
		return NewRedis(ctx, config.RedisAddr(), config.RedisPassword())
	case "s3":
		return NewS3(ctx, S3Options{
			Bucket:   config.S3Bucket(),
			Region:   config.S3Region(),
			Key:      config.S3Key(),
			Secret:   config.S3Secret(),
			Endpoint: config.S3Endpoint(),
			Prefix:   config.S3Prefix(),
		})
	case "mongo":
		return NewMongo(ctx, config.MongoURI(), config.MongoDatabase(), config.MongoCollection())
	default:
		return nil, fmt.Errorf("kv: unsupported STORE_DRIVER %q", driver)
	}
}
