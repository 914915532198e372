package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielokim/quotekit/internal/catalog"
	"github.com/danielokim/quotekit/internal/cli/formatter"
)

func newModelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Browse the catalog model keys",
	}

	cmd.AddCommand(
		newModelListCmd(),
		newModelParseCmd(),
	)

	return cmd
}

func newModelListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog model keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			headers := []string{"MODEL", "SERIES", "DECK", "SEATS", "BATTERY"}
			var rows [][]string
			needle := strings.ToLower(filter)

			for _, raw := range catalog.RawModels {
				if needle != "" && !strings.Contains(strings.ToLower(raw), needle) {
					continue
				}
				m := catalog.ParseModel(raw)
				deck, battery := "", ""
				if m.Deck != "" {
					deck = m.Deck.Label()
				}
				if m.Battery != "" {
					battery = m.Battery.Label()
				}
				rows = append(rows, []string{raw, string(m.Series), deck, m.SeatLabel, battery})
			}
			if len(rows) == 0 {
				fmt.Println("No models match the filter.")
				return nil
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Substring filter on the raw model key")

	return cmd
}

func newModelParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse MODEL_KEY",
		Short: "Show how a catalog key is parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(formatter.FormatModelAttrs(catalog.ParseModel(args[0])))
			return nil
		},
	}
}
