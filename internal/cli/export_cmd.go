package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielokim/quotekit/internal/cli/formatter"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export REF",
		Short: "Render a quote to PDF and PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			q, err := app.Quotes.Get(ctx, args[0])
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner("문서 렌더링 중...")
			exported, err := app.Export.Export(ctx, q.ID)
			stop()
			if err != nil {
				return err
			}

			fmt.Printf("Exported %s %s\n", formatter.Bold(exported.Number.String()), formatter.StatusBadge(exported.Status))
			fmt.Printf("  PDF: %s\n", exported.PDFPath)
			fmt.Printf("  PNG: %s\n", exported.PNGPath)
			return nil
		},
	}
}
