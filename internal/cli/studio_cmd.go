package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newStudioCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "studio [REF]",
		Short: "Live-edit a quote in an interactive chat session",
		Long: `Open a quote in the live studio: type free-form Korean instructions and
watch the quote recompute. Without REF the catalog picker creates a new
quote first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("the studio needs an interactive terminal")
			}

			ctx := context.Background()
			var quoteID string
			if len(args) == 1 {
				q, err := app.Quotes.Get(ctx, args[0])
				if err != nil {
					return err
				}
				quoteID = q.ID
			} else {
				raw, err := pickModel(app)
				if err != nil {
					return err
				}
				q, err := app.Quotes.CreateFromModel(ctx, raw)
				if err != nil {
					return err
				}
				quoteID = q.ID
			}

			q, err := app.Quotes.Get(ctx, quoteID)
			if err != nil {
				return err
			}

			program := tea.NewProgram(newStudioModel(app, q), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
}
