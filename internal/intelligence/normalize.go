// Package intelligence turns free-form Korean edit requests into validated
// patch operations. Model output is treated as untrusted input: every
// extracted operation set is dry-run against the target quote before it is
// returned, and any failure falls back to the deterministic keyword rules.
package intelligence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielokim/quotekit/internal/domain"
	"github.com/danielokim/quotekit/internal/llm"
	"github.com/danielokim/quotekit/internal/patch"
)

// Source identifies how a normalization result was produced.
type Source string

const (
	SourceModel   Source = "model"
	SourceKeyword Source = "keyword"
)

// Result is a validated set of patch operations ready for application.
type Result struct {
	Ops    []patch.Operation
	Source Source
}

// Normalizer converts edit requests into patch operations, using the model
// when available and keyword rules otherwise.
type Normalizer struct {
	client llm.Client
	cfg    llm.Config
	logger *slog.Logger
}

func NewNormalizer(client llm.Client, cfg llm.Config, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{client: client, cfg: cfg, logger: logger}
}

// Normalize produces patch operations for userText against the quote q.
// The returned operations are guaranteed to apply cleanly to q as it was
// passed in; q itself is never modified.
func (n *Normalizer) Normalize(ctx context.Context, userText string, q *domain.Quote) (*Result, error) {
	if n.cfg.Enabled && n.client != nil {
		ops, err := n.normalizeWithModel(ctx, userText, q)
		if err == nil {
			return &Result{Ops: ops, Source: SourceModel}, nil
		}
		n.logger.Warn("model normalization failed, using keyword rules",
			"error", err)
	}

	ops := keywordOps(userText, q)
	if err := dryRun(q, ops); err != nil {
		return nil, fmt.Errorf("keyword rules produced an invalid patch: %w", err)
	}
	return &Result{Ops: ops, Source: SourceKeyword}, nil
}

func (n *Normalizer) normalizeWithModel(ctx context.Context, userText string, q *domain.Quote) ([]patch.Operation, error) {
	prompt, err := buildNormalizePrompt(userText, q)
	if err != nil {
		return nil, err
	}

	resp, err := n.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskNormalize,
		SystemPrompt: normalizeSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, err
	}

	ops, err := llm.ExtractJSON[[]patch.Operation](resp.Text, validateOps)
	if err != nil {
		return nil, err
	}
	if err := dryRun(q, ops); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrInvalidOutput, err)
	}
	return ops, nil
}

// validateOps performs shape-level checks before the dry run. The patch
// engine does the full field-level validation.
func validateOps(ops []patch.Operation) error {
	for i, op := range ops {
		switch op.Op {
		case patch.OpReplace, patch.OpAdd, patch.OpRemove:
		default:
			return fmt.Errorf("op %d: unknown operation %q", i, op.Op)
		}
		if op.Path == "" {
			return fmt.Errorf("op %d: missing path", i)
		}
	}
	return nil
}

// dryRun applies the operations to a throwaway copy of the quote.
func dryRun(q *domain.Quote, ops []patch.Operation) error {
	_, err := patch.Apply(*q, ops, time.Now())
	return err
}
