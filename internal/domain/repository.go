package domain

import (
	"context"
	"time"
)

// CatalogSource defines the interface for reading category datasets.
type CatalogSource interface {
	// Products returns one category's products, already stamped with the
	// category. ErrCategoryUnavailable when the dataset cannot be read.
	Products(ctx context.Context, category Category) ([]Product, error)

	// News returns the news dataset.
	News(ctx context.Context) ([]NewsItem, error)
}

// CacheRepository defines the interface for byte-level caching of dataset
// reads.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
