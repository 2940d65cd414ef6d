// Package organizer wires the scan, classify, and move phases of a run
// together. It performs no console output itself; progress flows to the
// caller through callbacks.
package organizer

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/arigatoexpress/DesktopOrganizer/internal/config"
	"github.com/arigatoexpress/DesktopOrganizer/internal/engine"
	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
	"github.com/arigatoexpress/DesktopOrganizer/internal/mover"
	"github.com/arigatoexpress/DesktopOrganizer/internal/scanner"
	"github.com/arigatoexpress/DesktopOrganizer/internal/storage"
)

// Organizer runs the sequential scan, classify, plan, move pipeline, one
// file at a time.
type Organizer struct {
	scanner    *scanner.Scanner
	classifier *engine.Classifier
	logger     *slog.Logger
	cfg        config.Config
}

// New creates an Organizer from its collaborators.
func New(cfg config.Config, sc *scanner.Scanner, cls *engine.Classifier, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Organizer{
		cfg:        cfg,
		scanner:    sc,
		classifier: cls,
		logger:     logger,
	}
}

// Classifier exposes the engine, mainly so callers can report backend state.
func (o *Organizer) Classifier() *engine.Classifier {
	return o.classifier
}

// Discover scans the source directory, excluding the output directory's
// subtree when it nests inside the source.
func (o *Organizer) Discover(ctx context.Context, sourceDir, outputDir string, recursive bool, progress func(count int, name string)) ([]model.FileRecord, error) {
	return o.scanner.Scan(ctx, sourceDir, scanner.Options{
		Recursive:   recursive,
		ExcludeDirs: []string{outputDir},
		Progress:    progress,
	})
}

// ClassifyAll resolves every record through the cascade, in order.
func (o *Organizer) ClassifyAll(ctx context.Context, records []model.FileRecord, progress func(done, total int, result model.ClassificationResult)) []model.ClassificationResult {
	results := make([]model.ClassificationResult, 0, len(records))
	for _, record := range records {
		result := o.classifier.Classify(ctx, record)
		results = append(results, result)
		if progress != nil {
			progress(len(results), len(records), result)
		}
	}
	return results
}

// PlanDestination computes the destination a result maps to, for display.
// The actual move re-resolves collisions at execution time.
func PlanDestination(outputDir string, result model.ClassificationResult) string {
	return filepath.Join(outputDir, filepath.FromSlash(result.Category.Path), result.Record.Name)
}

// ExecSummary reports what Execute did.
type ExecSummary struct {
	Operations []model.MoveOperation
	Skipped    int
	// LogCorrupt is set when the session log had to be reset on open;
	// prior runs are no longer undoable.
	LogCorrupt bool
}

// Execute applies the classification results. In dry-run mode the
// destination plan is computed but nothing changes on disk or in the log.
// Cancellation between files stops the loop but still completes the session
// so the partial run stays undoable.
func (o *Organizer) Execute(ctx context.Context, results []model.ClassificationResult, sourceDir, outputDir string, dryRun bool, progress func(done, total int, op model.MoveOperation, skipped bool)) (ExecSummary, error) {
	log := storage.OpenSessionLog(filepath.Join(outputDir, o.cfg.Output.LogFileName), o.logger)
	summary := ExecSummary{LogCorrupt: log.Corrupt()}

	m := mover.New(outputDir, log, dryRun, o.logger)
	if err := m.StartSession(sourceDir); err != nil {
		return summary, err
	}

	var runErr error
	done := 0
	for _, result := range results {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		op, ok := m.Apply(result)
		done++
		if ok {
			summary.Operations = append(summary.Operations, op)
		} else {
			summary.Skipped++
		}
		if progress != nil {
			progress(done, len(results), op, !ok)
		}
	}

	if err := m.EndSession(); err != nil {
		o.logger.Error("failed to complete session", "error", err)
		if runErr == nil {
			runErr = err
		}
	}

	o.logger.Info("organize run finished",
		"moved", len(summary.Operations),
		"skipped", summary.Skipped,
		"dry_run", dryRun)

	return summary, runErr
}

// MethodTally counts results per classification method, for the analysis
// summary.
func MethodTally(results []model.ClassificationResult) map[model.Method]int {
	tally := make(map[model.Method]int)
	for _, r := range results {
		tally[r.Method]++
	}
	return tally
}
