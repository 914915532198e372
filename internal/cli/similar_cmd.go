package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielokim/quotekit/internal/cli/formatter"
)

func newSimilarCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "similar QUERY...",
		Short: "Find past quotes similar to a description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			stop := formatter.StartSpinner("유사 견적 검색 중...")
			matches, err := app.Similar.Search(context.Background(), query, limit)
			stop()
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Println("No similar quotes found.")
				return nil
			}
			fmt.Print(formatter.FormatMatches(matches))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Number of matches to return")

	return cmd
}
