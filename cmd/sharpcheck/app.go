package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"sharpcheck/internal/analysis"
	"sharpcheck/internal/analysis/rules"
	"sharpcheck/internal/config"
	coreerrors "sharpcheck/internal/core/errors"
	"sharpcheck/internal/history"
	"sharpcheck/internal/observability"
	"sharpcheck/internal/report"
	"sharpcheck/internal/semantic"
	"sharpcheck/internal/syntax"
	"sharpcheck/internal/util"
	"sharpcheck/internal/watcher"
)

type App struct {
	Config   *config.Config
	Registry *analysis.Registry

	parser   *syntax.Parser
	runner   *analysis.Runner
	active   []analysis.Rule
	severity map[string]analysis.Severity

	history *history.Store
	watcher *watcher.Watcher
	limiter *util.Limiter
	program *tea.Program

	mu          sync.Mutex
	fileResults map[string][]analysis.Diagnostic
	fileCount   int
}

func NewApp(cfg *config.Config) (*App, error) {
	registry := analysis.NewRegistry()
	if err := rules.RegisterAll(registry); err != nil {
		return nil, err
	}
	if err := validateRuleOverrides(cfg, registry); err != nil {
		return nil, err
	}

	active := make([]analysis.Rule, 0)
	severity := make(map[string]analysis.Severity)
	for _, rule := range registry.Rules() {
		desc := rule.Descriptor()
		if !cfg.RuleEnabled(desc) {
			continue
		}
		active = append(active, rule)
		severity[desc.ID] = cfg.RuleSeverity(desc)
	}

	app := &App{
		Config:      cfg,
		Registry:    registry,
		parser:      syntax.NewParser(syntax.NewGrammarLoader()),
		runner:      analysis.NewRunner(active, semantic.NewTreeResolver()),
		active:      active,
		severity:    severity,
		limiter:     util.NewLimiter(cfg.Watch.RescansPerSecond, 1),
		fileResults: make(map[string][]analysis.Diagnostic),
	}

	if cfg.Output.History != "" {
		store, err := history.Open(cfg.Output.History)
		if err != nil {
			return nil, err
		}
		app.history = store
	}

	return app, nil
}

func validateRuleOverrides(cfg *config.Config, registry *analysis.Registry) error {
	for id := range cfg.Rules {
		if _, ok := registry.Lookup(id); !ok {
			return coreerrors.New(coreerrors.CodeValidationError, fmt.Sprintf("unknown rule id %q in config", id))
		}
	}
	return nil
}

func (a *App) Close() error {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}

// InitialScan analyzes every matching file under the configured scan paths.
func (a *App) InitialScan(ctx context.Context) error {
	files, err := a.ScanDirectories(a.Config.ScanPaths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return err
	}
	return a.AnalyzeFiles(ctx, files)
}

// ScanDirectories collects the C# files under paths, skipping excluded
// directories and files.
func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, pattern := range excludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, pattern := range excludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		fileGlobs = append(fileGlobs, g)
	}

	var files []string
	seen := make(map[string]bool)
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := d.Name()
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if !strings.EqualFold(filepath.Ext(base), ".cs") {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// AnalyzeFiles parses and analyzes files concurrently, one worker per CPU.
// Per-file failures degrade to warnings; the scan keeps going.
func (a *App) AnalyzeFiles(ctx context.Context, files []string) error {
	ctx, span := observability.Tracer.Start(ctx, "app.AnalyzeFiles", trace.WithAttributes())
	defer span.End()

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := a.processFile(ctx, path); err != nil {
				slog.Warn("failed to process file", "path", path, "error", err)
			}
		}(path)
	}
	wg.Wait()

	return ctx.Err()
}

func (a *App) processFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return coreerrors.AddContext(err, coreerrors.CtxPath, path)
	}

	start := time.Now()
	tree, err := a.parser.ParseFile(path, content)
	if err != nil {
		return coreerrors.Wrap(err, coreerrors.CodeParseFailed, "parse file")
	}
	defer tree.Close()
	observability.ParsingDuration.WithLabelValues("csharp").Observe(time.Since(start).Seconds())

	diags, err := a.runner.AnalyzeFile(ctx, path, content, tree.Root())
	if err != nil {
		return err
	}
	for i := range diags {
		if sev, ok := a.severity[diags[i].RuleID]; ok {
			diags[i].Severity = sev
		}
	}
	observability.FilesAnalyzedTotal.Inc()

	a.mu.Lock()
	if _, known := a.fileResults[path]; !known {
		a.fileCount++
	}
	a.fileResults[path] = diags
	a.mu.Unlock()
	return nil
}

// Diagnostics returns the current diagnostics across all analyzed files.
func (a *App) Diagnostics() []analysis.Diagnostic {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []analysis.Diagnostic
	for _, diags := range a.fileResults {
		out = append(out, diags...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Location.File != out[j].Location.File {
			return out[i].Location.File < out[j].Location.File
		}
		return out[i].Location.Line < out[j].Location.Line
	})
	return out
}

func (a *App) FileCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fileCount
}

// WriteSARIF writes the current diagnostics as a SARIF document.
func (a *App) WriteSARIF(path string) error {
	root, err := os.Getwd()
	if err != nil {
		root = ""
	}
	data, err := report.GenerateSARIF(root, a.active, a.Diagnostics())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveRun persists the current diagnostic counts to the history store.
func (a *App) SaveRun() error {
	if a.history == nil {
		return nil
	}
	diags := a.Diagnostics()
	counts := make(map[string]int)
	for _, d := range diags {
		counts[d.RuleID]++
	}
	return a.history.SaveRun(history.Run{
		RunID:           uuid.NewString(),
		Timestamp:       time.Now().UTC(),
		FileCount:       a.FileCount(),
		DiagnosticCount: len(diags),
		RuleCounts:      counts,
	})
}

// Trends renders the recent run history.
func (a *App) Trends(limit int) (string, error) {
	if a.history == nil {
		return "", coreerrors.New(coreerrors.CodeNotFound, "no history database configured (set output.history)")
	}
	runs, err := a.history.LoadRuns(limit)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Run history\n")
	b.WriteString("===========\n")
	for _, run := range runs {
		b.WriteString(fmt.Sprintf("%s  files=%d  diagnostics=%d\n",
			run.Timestamp.Format(time.RFC3339), run.FileCount, run.DiagnosticCount))
		ruleIDs := make([]string, 0, len(run.RuleCounts))
		for id := range run.RuleCounts {
			ruleIDs = append(ruleIDs, id)
		}
		sort.Strings(ruleIDs)
		for _, id := range ruleIDs {
			b.WriteString(fmt.Sprintf("  %s: %d\n", id, run.RuleCounts[id]))
		}
	}
	return b.String(), nil
}

// StartWatcher begins watch mode: changed files are re-analyzed after the
// debounce window, throttled by the rescan limiter.
func (a *App) StartWatcher(ctx context.Context) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		func(paths []string) { a.onFilesChanged(ctx, paths) },
	)
	if err != nil {
		return err
	}
	a.watcher = w
	return w.Watch(a.Config.ScanPaths)
}

func (a *App) onFilesChanged(ctx context.Context, paths []string) {
	if err := a.limiter.Wait(ctx, 1); err != nil {
		return
	}

	live := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			// Deleted or renamed away; drop its diagnostics.
			a.mu.Lock()
			if _, known := a.fileResults[path]; known {
				delete(a.fileResults, path)
				a.fileCount--
			}
			a.mu.Unlock()
			continue
		}
		live = append(live, path)
	}

	if err := a.AnalyzeFiles(ctx, live); err != nil {
		slog.Warn("rescan failed", "error", err)
		return
	}
	if err := a.SaveRun(); err != nil {
		slog.Warn("failed to save run history", "error", err)
	}
	a.notifyUI()
}

func (a *App) notifyUI() {
	if a.program == nil {
		return
	}
	a.program.Send(updateMsg{
		diagnostics: a.Diagnostics(),
		fileCount:   a.FileCount(),
	})
}
