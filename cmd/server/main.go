package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/specmaru/backend/config"
	httpDelivery "github.com/specmaru/backend/internal/delivery/http"
	"github.com/specmaru/backend/internal/infrastructure/cache"
	"github.com/specmaru/backend/internal/infrastructure/dataset"
	"github.com/specmaru/backend/internal/usecase"
)

func main() {
	// Load .env if present; real environment still wins
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SpecMaru Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Dataset dir: %s", cfg.Datasets.Dir)

	// Initialize infrastructure dependencies
	store := dataset.NewDirStore(cfg.Datasets.Dir)
	if cfg.Datasets.CacheTTL > 0 {
		store.WithCache(cache.NewMemoryCache(), cfg.Datasets.CacheTTL)
		log.Printf("Dataset cache TTL: %s", cfg.Datasets.CacheTTL)
	} else {
		log.Printf("Dataset cache disabled")
	}

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		store.SetDebug(true)
		log.Printf("Dataset store debug mode enabled")
	}

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(store, nil)
	listingService := usecase.NewListingService(cfg.Catalog.PageSize)

	log.Printf("Catalog: categories=%v, page size=%d",
		catalogService.Categories(), cfg.Catalog.PageSize)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, listingService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
