package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/danielokim/quotekit/internal/catalog"
	"github.com/danielokim/quotekit/internal/cli"
	"github.com/danielokim/quotekit/internal/db"
	"github.com/danielokim/quotekit/internal/intelligence"
	"github.com/danielokim/quotekit/internal/llm"
	"github.com/danielokim/quotekit/internal/render"
	"github.com/danielokim/quotekit/internal/repository"
	"github.com/danielokim/quotekit/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.quotekit/quotekit.db
	dbPath := os.Getenv("QUOTEKIT_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".quotekit", "quotekit.db")
	}

	// Price book: optional YAML override, otherwise the built-in catalog.
	priceBook := catalog.DefaultPriceBook()
	if path := os.Getenv("QUOTEKIT_PRICEBOOK"); path != "" {
		loaded, err := catalog.LoadPriceBook(path)
		if err != nil {
			return fmt.Errorf("loading price book: %w", err)
		}
		priceBook = loaded
	}

	// Exported PDFs and screenshots land next to the DB unless overridden.
	exportDir := os.Getenv("QUOTEKIT_EXPORT_DIR")
	if exportDir == "" {
		exportDir = filepath.Dir(dbPath)
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	quoteRepo := repository.NewSQLiteQuoteRepo(database)
	patchLogRepo := repository.NewSQLitePatchLogRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire LLM client (disabled unless QUOTEKIT_LLM_ENABLED is set)
	llmCfg := llm.LoadConfig()
	var llmClient llm.Client
	var embedder service.Embedder
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		llmClient = llm.NewOllamaClient(llmCfg, observer)
		embedder = llmClient
	}

	app := &cli.App{
		Quotes: service.NewQuoteService(
			quoteRepo,
			patchLogRepo,
			uow,
			service.NewNumberingService(),
			priceBook,
			embedder,
		),
		Export:     service.NewExportService(quoteRepo, render.NewChromeRenderer(exportDir)),
		Similar:    service.NewSimilarService(quoteRepo, embedder),
		Normalizer: intelligence.NewNormalizer(llmClient, llmCfg, nil),
	}

	// Detect interactive terminal for the model picker and the studio.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
