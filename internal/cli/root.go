package cli

import (
	"github.com/spf13/cobra"

	"github.com/danielokim/quotekit/internal/intelligence"
	"github.com/danielokim/quotekit/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Quotes     service.QuoteService
	Export     service.ExportService
	Similar    service.SimilarService
	Normalizer *intelligence.Normalizer

	// IsInteractive reports whether stdin is a terminal; the model picker
	// and the studio need one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "quotekit" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "quotekit",
		Short: "Quote builder for the golf cart catalog",
	}

	root.AddCommand(
		newQuoteCmd(app),
		newExportCmd(app),
		newSimilarCmd(app),
		newModelCmd(app),
		newStudioCmd(app),
	)

	return root
}
