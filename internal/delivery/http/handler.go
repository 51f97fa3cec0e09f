package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/specmaru/backend/internal/domain"
	"github.com/specmaru/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
	listing *usecase.ListingService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService, listing *usecase.ListingService) *Handler {
	return &Handler{
		catalog: catalog,
		listing: listing,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "specmaru-backend",
		"version": "1.0.0",
	})
}

// ListProducts serves the filtered, sorted, paginated catalog listing.
// Query params: tab (category filter, default "all"), q (free text),
// sort ("release" or "price"), page (1-based).
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	query := usecase.ListingQuery{
		Category: domain.Category(c.DefaultQuery("tab", string(domain.CategoryAll))),
		Query:    c.Query("q"),
		Sort:     usecase.SortPolicy(c.Query("sort")),
		Page:     page,
	}

	catalog := h.catalog.LoadCatalog(c.Request.Context())
	result := h.listing.Query(catalog, query)
	if result.Items == nil {
		result.Items = []domain.Product{}
	}
	c.JSON(http.StatusOK, result)
}

// GetProduct resolves a single product by identifier across all categories.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.ResolveByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// compareSlotResponse is one hydrated comparison slot. Product is null when
// the identifier did not resolve, which renders as an empty searching slot.
type compareSlotResponse struct {
	Product *domain.Product `json:"product"`
}

// Compare hydrates the two comparison slots from route identifiers and
// returns the spec diff table. The second identifier is optional; an
// unresolved identifier leaves its slot empty rather than failing the view.
func (h *Handler) Compare(c *gin.Context) {
	catalog := h.catalog.LoadCatalog(c.Request.Context())
	engine := usecase.NewCompareEngine(catalog)

	left := h.hydrateSlot(c, engine, usecase.SlotLeft, c.Param("id1"))
	right := h.hydrateSlot(c, engine, usecase.SlotRight, c.Param("id2"))

	c.JSON(http.StatusOK, gin.H{
		"left":  left,
		"right": right,
		"rows":  engine.DiffRows(),
	})
}

func (h *Handler) hydrateSlot(c *gin.Context, engine *usecase.CompareEngine, side usecase.SlotSide, id string) compareSlotResponse {
	if id == "" {
		return compareSlotResponse{}
	}
	gen := engine.BeginHydration(side)
	product, err := h.catalog.ResolveByID(c.Request.Context(), id)
	engine.ApplyHydration(side, gen, product, err == nil)
	if err != nil {
		return compareSlotResponse{}
	}
	return compareSlotResponse{Product: &product}
}

// compareCandidate is one live-search result with its commit eligibility
// against the fixed slot's category.
type compareCandidate struct {
	Product  domain.Product `json:"product"`
	Eligible bool           `json:"eligible"`
}

// CompareSearch serves live-search candidates for replacing a comparison
// slot. Query params: q (free text; empty yields no candidates), with
// (optional id of the other slot's product; candidates of a different
// category are flagged ineligible).
func (h *Handler) CompareSearch(c *gin.Context) {
	catalog := h.catalog.LoadCatalog(c.Request.Context())
	engine := usecase.NewCompareEngine(catalog)

	fixedCategory := domain.Category("")
	if withID := c.Query("with"); withID != "" {
		if fixed, err := h.catalog.ResolveByID(c.Request.Context(), withID); err == nil {
			fixedCategory = fixed.Category
			engine.Fill(usecase.SlotRight, fixed)
		}
	}

	if err := engine.SetQuery(usecase.SlotLeft, c.Query("q")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := engine.Slot(usecase.SlotLeft).Results
	candidates := make([]compareCandidate, 0, len(results))
	for _, p := range results {
		candidates = append(candidates, compareCandidate{
			Product:  p,
			Eligible: fixedCategory == "" || p.Category == fixedCategory,
		})
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// ListNews serves the news dataset.
func (h *Handler) ListNews(c *gin.Context) {
	items := h.catalog.LoadNews(c.Request.Context())
	if items == nil {
		items = []domain.NewsItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
