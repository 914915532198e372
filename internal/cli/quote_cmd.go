package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/danielokim/quotekit/internal/catalog"
	"github.com/danielokim/quotekit/internal/cli/formatter"
	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/intelligence"
)

func newQuoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Manage quotes",
	}

	cmd.AddCommand(
		newQuoteNewCmd(app),
		newQuoteListCmd(app),
		newQuoteShowCmd(app),
		newQuoteReviseCmd(app),
		newQuoteEditCmd(app),
		newQuoteUndoCmd(app),
		newQuoteResetCmd(app),
		newQuoteRemoveCmd(app),
	)

	return cmd
}

func newQuoteNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new [MODEL_KEY]",
		Short: "Create a quote from a catalog model key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			} else {
				picked, err := pickModel(app)
				if err != nil {
					return err
				}
				raw = picked
			}

			q, err := app.Quotes.CreateFromModel(context.Background(), raw)
			if err != nil {
				return err
			}

			fmt.Printf("Created quote %s\n\n", formatter.Bold(q.Number.String()))
			fmt.Println(formatter.FormatQuoteDetail(q))
			return nil
		},
	}
}

// pickModel runs the interactive catalog picker.
func pickModel(app *App) (string, error) {
	if app.IsInteractive == nil || !app.IsInteractive() {
		return "", fmt.Errorf("a model key is required when not running interactively")
	}

	options := make([]huh.Option[string], 0, len(catalog.RawModels))
	for _, raw := range catalog.RawModels {
		options = append(options, huh.NewOption(raw, raw))
	}

	var picked string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("모델 선택").
			Options(options...).
			Value(&picked),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("model selection aborted: %w", err)
	}
	return picked, nil
}

// statusFlag is a pflag.Value that only accepts known lifecycle statuses.
type statusFlag struct {
	status domain.Status
}

func (f *statusFlag) String() string { return string(f.status) }
func (f *statusFlag) Type() string   { return "status" }

func (f *statusFlag) Set(value string) error {
	candidate := domain.Status(value)
	if !domain.ValidStatuses[candidate] {
		return fmt.Errorf("unknown status %q (valid: draft, revised, ready)", value)
	}
	f.status = candidate
	return nil
}

var _ pflag.Value = (*statusFlag)(nil)

func newQuoteListCmd(app *App) *cobra.Command {
	var limit int
	var status statusFlag

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := app.Quotes.List(context.Background(), limit)
			if err != nil {
				return err
			}
			if status.status != "" {
				filtered := summaries[:0]
				for _, s := range summaries {
					if s.Status == status.status {
						filtered = append(filtered, s)
					}
				}
				summaries = filtered
			}
			if len(summaries) == 0 {
				fmt.Println("No quotes found.")
				return nil
			}
			fmt.Print(formatter.FormatQuoteList(summaries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of quotes to list")
	cmd.Flags().Var(&status, "status", "Only list quotes with this status")

	return cmd
}

func newQuoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show REF",
		Short: "Show a quote by ID or quote number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := app.Quotes.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatQuoteDetail(q))
			return nil
		},
	}
}

func newQuoteReviseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "revise REF",
		Short: "Issue a new revision of a quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			q, err := app.Quotes.Get(ctx, args[0])
			if err != nil {
				return err
			}
			revised, err := app.Quotes.Revise(ctx, q.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Issued revision %s\n", formatter.Bold(revised.Number.String()))
			return nil
		},
	}
}

func newQuoteEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit REF TEXT...",
		Short: "Edit a quote from a free-form instruction",
		Long: `Edit a quote from a free-form Korean instruction, for example:
  quotekit quote edit 25-672-1 "6인승 리튬으로 변경"
The instruction is turned into patch operations, applied atomically, and
logged so it can be undone.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			q, err := app.Quotes.Get(ctx, args[0])
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")
			stop := formatter.StartSpinner("요청 해석 중...")
			result, err := app.Normalizer.Normalize(ctx, text, q)
			stop()
			if err != nil {
				return err
			}
			if len(result.Ops) == 0 {
				fmt.Println("No edit recognized in the instruction.")
				return nil
			}

			patched, err := app.Quotes.ApplyPatch(ctx, q.ID, result.Ops)
			if err != nil {
				return err
			}

			if result.Source == intelligence.SourceKeyword {
				fmt.Println(formatter.Dim("(keyword rules)"))
			}
			for _, op := range result.Ops {
				fmt.Printf("  %s\n", formatter.Dim(op.String()))
			}
			fmt.Println()
			fmt.Println(formatter.FormatQuoteDetail(patched))
			return nil
		},
	}
}

func newQuoteUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo REF",
		Short: "Undo the most recent edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			q, err := app.Quotes.Get(ctx, args[0])
			if err != nil {
				return err
			}
			undone, err := app.Quotes.Undo(ctx, q.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatQuoteDetail(undone))
			return nil
		},
	}
}

func newQuoteResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset REF",
		Short: "Discard all edits and restore the base quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			q, err := app.Quotes.Get(ctx, args[0])
			if err != nil {
				return err
			}
			restored, err := app.Quotes.Reset(ctx, q.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatQuoteDetail(restored))
			return nil
		},
	}
}

func newQuoteRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove REF",
		Short: "Delete a quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			q, err := app.Quotes.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Quotes.Delete(ctx, q.ID); err != nil {
				return err
			}
			fmt.Printf("Removed quote %s\n", q.Number.String())
			return nil
		},
	}
}
