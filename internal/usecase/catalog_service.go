package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/specmaru/backend/internal/domain"
)

// CatalogService loads category datasets into a unified catalog and resolves
// products by identifier. Every load returns a fresh value; the service
// itself holds no catalog state, so each view activation gets its own copy.
type CatalogService struct {
	source     domain.CatalogSource
	categories []domain.Category
}

// NewCatalogService creates a catalog service over the given source. A nil
// or empty category list falls back to the fixed product category order.
func NewCatalogService(source domain.CatalogSource, categories []domain.Category) *CatalogService {
	if len(categories) == 0 {
		categories = domain.ProductCategories
	}
	return &CatalogService{
		source:     source,
		categories: categories,
	}
}

// Categories returns the fixed category search order.
func (s *CatalogService) Categories() []domain.Category {
	return s.categories
}

// LoadCatalog merges all category datasets into one flat sequence, ordered
// by category-list order then original per-category order. A category whose
// dataset cannot be read contributes zero products; the failure is logged
// and never propagated, so one broken dataset cannot empty the others.
func (s *CatalogService) LoadCatalog(ctx context.Context) []domain.Product {
	var catalog []domain.Product
	for _, category := range s.categories {
		products, err := s.source.Products(ctx, category)
		if err != nil {
			log.Printf("[CATALOG] Skipping category %q: %v", category, err)
			continue
		}
		catalog = append(catalog, products...)
	}
	return catalog
}

// ResolveByID returns the first product whose identifier exactly equals id,
// searching categories in the fixed order. Identifier collisions across
// categories resolve deterministically to the earlier category. Returns
// domain.ErrProductNotFound when no category matches.
func (s *CatalogService) ResolveByID(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, domain.ErrInvalidRequest
	}

	for _, category := range s.categories {
		products, err := s.source.Products(ctx, category)
		if err != nil {
			log.Printf("[CATALOG] Resolve skipping category %q: %v", category, err)
			continue
		}
		for _, p := range products {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// LoadNews returns the news dataset, degrading to an empty list on failure.
func (s *CatalogService) LoadNews(ctx context.Context) []domain.NewsItem {
	items, err := s.source.News(ctx)
	if err != nil {
		log.Printf("[CATALOG] News unavailable: %v", err)
		return nil
	}
	return items
}
