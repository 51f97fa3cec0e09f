package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/specmaru/backend/internal/domain"
)

// Store reads per-category JSON datasets from a filesystem. Each category
// lives in "<category>.json" as an array of records. An optional byte cache
// absorbs repeated reads; with no cache (or TTL 0) every load hits the
// filesystem, keeping the per-view-load semantics explicit.
type Store struct {
	fsys     fs.FS
	cache    domain.CacheRepository
	cacheTTL time.Duration
	debug    bool
}

// NewStore creates a dataset store over the given filesystem.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// NewDirStore creates a dataset store over a directory path.
func NewDirStore(dir string) *Store {
	return NewStore(os.DirFS(dir))
}

// WithCache attaches a read-through byte cache. TTL 0 disables caching.
func (s *Store) WithCache(cache domain.CacheRepository, ttl time.Duration) *Store {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// SetDebug enables verbose read logging.
func (s *Store) SetDebug(debug bool) {
	s.debug = debug
}

// Products returns one category's products stamped with the category.
// Returns domain.ErrCategoryUnavailable when the file is missing or
// malformed.
func (s *Store) Products(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	data, err := s.read(ctx, string(category))
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Printf("[DATASET] Malformed dataset %q: %v", category, err)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCategoryUnavailable, category, err)
	}

	for i := range products {
		products[i].Category = category
	}

	if s.debug {
		log.Printf("[DATASET] Loaded %d products from %q", len(products), category)
	}
	return products, nil
}

// News returns the news dataset.
func (s *Store) News(ctx context.Context) ([]domain.NewsItem, error) {
	data, err := s.read(ctx, string(domain.CategoryNews))
	if err != nil {
		return nil, err
	}

	var items []domain.NewsItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[DATASET] Malformed news dataset: %v", err)
		return nil, fmt.Errorf("%w: news: %v", domain.ErrCategoryUnavailable, err)
	}
	return items, nil
}

// read fetches a dataset's raw bytes, consulting the cache first.
func (s *Store) read(ctx context.Context, name string) ([]byte, error) {
	filename := name + ".json"
	cacheKey := "dataset:" + filename

	if s.cache != nil && s.cacheTTL > 0 {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			if s.debug {
				log.Printf("[DATASET] Cache hit for %s", filename)
			}
			return data, nil
		}
	}

	data, err := fs.ReadFile(s.fsys, filename)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[DATASET] Read error for %s: %v", filename, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCategoryUnavailable, name, err)
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
			log.Printf("[DATASET] Cache write failed for %s: %v", filename, err)
		}
	}

	return data, nil
}
