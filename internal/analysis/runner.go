package analysis

import (
	"context"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"sharpcheck/internal/observability"
	"sharpcheck/internal/semantic"
)

// Runner dispatches registered rules over a file's syntax tree. It owns no
// mutable state after construction, so one Runner can analyze many files
// concurrently.
type Runner struct {
	handlers map[string][]Rule
	resolver semantic.Resolver
}

func NewRunner(rules []Rule, resolver semantic.Resolver) *Runner {
	handlers := make(map[string][]Rule)
	for _, rule := range rules {
		for _, kind := range rule.Kinds() {
			handlers[kind] = append(handlers[kind], rule)
		}
	}
	return &Runner{handlers: handlers, resolver: resolver}
}

// AnalyzeFile walks the tree once and collects diagnostics from every rule
// registered for the kinds encountered. Cancellation stops the walk between
// nodes; individual rule invocations always run to completion.
func (r *Runner) AnalyzeFile(ctx context.Context, path string, source []byte, root *sitter.Node) ([]Diagnostic, error) {
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("rules").Observe(time.Since(start).Seconds())
	}()

	fileCtx := &Context{
		Path:     path,
		Source:   source,
		Resolver: r.resolver,
	}

	var diags []Diagnostic
	var walk func(node *sitter.Node) error
	walk = func(node *sitter.Node) error {
		if node == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, rule := range r.handlers[node.Kind()] {
			found := rule.Check(fileCtx, node)
			for _, d := range found {
				observability.DiagnosticsTotal.WithLabelValues(d.RuleID).Inc()
			}
			diags = append(diags, found...)
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			if err := walk(node.Child(i)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return diags, nil
}
