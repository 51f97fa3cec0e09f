package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/specmaru/backend/internal/infrastructure/dataset"
	"github.com/specmaru/backend/internal/tui"
	"github.com/specmaru/backend/internal/usecase"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "specmaru-tui [id1 [id2]]",
	Short: "Interactive side-by-side spec comparison browser",
	Long: `specmaru-tui opens a terminal comparison view over the local product
datasets. Pass up to two product identifiers to pre-fill the slots; an empty
slot offers a live search with arrow-key navigation.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id1, id2 string
		if len(args) > 0 {
			id1 = args[0]
		}
		if len(args) > 1 {
			id2 = args[1]
		}

		store := dataset.NewDirStore(dataDir)
		catalogService := usecase.NewCatalogService(store, nil)

		program := tea.NewProgram(
			tui.New(catalogService, id1, id2),
			tea.WithAltScreen(),
		)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running comparison browser: %w", err)
		}
		return nil
	},
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	rootCmd.Flags().StringVar(&dataDir, "data-dir", envOr("SPECMARU_DATASETS_DIR", "./data"), "directory holding the category datasets")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
