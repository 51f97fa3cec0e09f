package usecase

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/specmaru/backend/internal/domain"
)

// DefaultPageSize is the fixed listing page size.
const DefaultPageSize = 10

// SortPolicy selects the listing order.
type SortPolicy string

const (
	// SortByRelease orders by descending parsed release date (default).
	SortByRelease SortPolicy = "release"
	// SortByPrice orders by ascending extracted numeric price, for the
	// used-market tab.
	SortByPrice SortPolicy = "price"
)

// releaseDateLayouts accepted after the first period is replaced with "-".
var releaseDateLayouts = []string{"2006-01", "2006-1"}

// ListingQuery describes one listing request.
type ListingQuery struct {
	Category domain.Category // domain.CategoryAll keeps every category
	Query    string          // free text, normalized before matching
	Sort     SortPolicy      // zero value means SortByRelease
	Page     int             // 1-based; out of range clamps
}

// ListingPage is one page of a filtered, sorted listing.
type ListingPage struct {
	Items      []domain.Product `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	TotalItems int              `json:"totalItems"`
}

// ListingService computes filtered, sorted, paginated views over a catalog.
type ListingService struct {
	pageSize int
}

// NewListingService creates a listing service. Page size defaults to 10
// when zero or negative.
func NewListingService(pageSize int) *ListingService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListingService{pageSize: pageSize}
}

// Query applies category filter, normalized substring match, sort, and page
// slicing, in that order. Page selection never changes the filtered set.
func (s *ListingService) Query(catalog []domain.Product, q ListingQuery) ListingPage {
	filtered := filterByCategory(catalog, q.Category)
	filtered = filterByQuery(filtered, q.Query)
	sortProducts(filtered, q.Sort)

	total := len(filtered)
	totalPages := (total + s.pageSize - 1) / s.pageSize

	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * s.pageSize
	end := start + s.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return ListingPage{
		Items:      filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

func filterByCategory(catalog []domain.Product, category domain.Category) []domain.Product {
	if category == "" || category == domain.CategoryAll {
		return append([]domain.Product(nil), catalog...)
	}
	var kept []domain.Product
	for _, p := range catalog {
		if p.Category == category {
			kept = append(kept, p)
		}
	}
	return kept
}

// filterByQuery keeps products whose normalized id, name, or joined spec
// values contain the normalized query. An empty normalized query keeps
// everything without consulting the substring rule.
func filterByQuery(products []domain.Product, query string) []domain.Product {
	normalized := Normalize(query)
	if normalized == "" {
		return products
	}

	var kept []domain.Product
	for _, p := range products {
		if productMatches(p, normalized) {
			kept = append(kept, p)
		}
	}
	return kept
}

// productMatches reports whether a product's id, name, or joined spec values
// contain the already-normalized query.
func productMatches(p domain.Product, normalizedQuery string) bool {
	return MatchesNormalized(normalizedQuery, p.ID) ||
		MatchesNormalized(normalizedQuery, p.Name) ||
		MatchesNormalized(normalizedQuery, joinSpecValues(p.Specs))
}

// joinSpecValues concatenates all spec values with single spaces in key
// insertion order.
func joinSpecValues(specs domain.Specs) string {
	keys := specs.Keys()
	if len(keys) == 0 {
		return ""
	}
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if v, ok := specs.Get(key); ok {
			parts = append(parts, v.String())
		}
	}
	return strings.Join(parts, " ")
}

// sortProducts orders in place. Products sharing a sort key (or lacking one)
// tie-break on identifier ascending, keeping the order deterministic under
// input reordering; the sort is stable on top of that.
func sortProducts(products []domain.Product, policy SortPolicy) {
	switch policy {
	case SortByPrice:
		sort.SliceStable(products, func(i, j int) bool {
			pi, iok := ExtractPrice(products[i].Price)
			pj, jok := ExtractPrice(products[j].Price)
			if iok != jok {
				return iok // priced listings before unpriced ones
			}
			if pi != pj {
				return pi < pj
			}
			return products[i].ID < products[j].ID
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			di := ParseReleaseDate(products[i].ReleaseDate())
			dj := ParseReleaseDate(products[j].ReleaseDate())
			if !di.Equal(dj) {
				return di.After(dj)
			}
			return products[i].ID < products[j].ID
		})
	}
}

// ParseReleaseDate parses a period-delimited release date ("2024.09") by
// substituting the first period with a dash and reading a calendar date.
// Missing or unparsable values return the zero time, which sorts as the
// oldest possible date.
func ParseReleaseDate(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}
	value = strings.Replace(value, ".", "-", 1)
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ExtractPrice pulls the numeric value out of a formatted price string
// ("1,200,000원" -> 1200000). Returns false when the string holds no digits.
func ExtractPrice(raw string) (int64, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
