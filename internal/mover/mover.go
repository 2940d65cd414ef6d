// Package mover applies classification results to the filesystem and can
// reverse a completed run from the session log alone.
package mover

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
	"github.com/arigatoexpress/DesktopOrganizer/internal/storage"
)

// Mover executes file moves for one organize run. Each move is atomic on its
// own; the run as a whole is not, and earlier moves are never rolled back
// when a later one fails.
type Mover struct {
	log       *storage.SessionLog
	logger    *slog.Logger
	outputDir string
	sessionID string
	dryRun    bool
}

// New creates a Mover writing under outputDir. In dry-run mode destination
// plans are computed but nothing on disk or in the log changes.
func New(outputDir string, log *storage.SessionLog, dryRun bool, logger *slog.Logger) *Mover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mover{
		outputDir: outputDir,
		log:       log,
		dryRun:    dryRun,
		logger:    logger,
	}
}

// StartSession opens the undo ledger entry for this run. No-op in dry-run.
func (m *Mover) StartSession(sourceDir string) error {
	if m.dryRun {
		return nil
	}
	session, err := m.log.CreateSession(sourceDir, m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	m.sessionID = session.ID
	return nil
}

// EndSession marks the run's session completed so undo can see it. It is
// called even when files were skipped. No-op in dry-run.
func (m *Mover) EndSession() error {
	if m.dryRun || m.sessionID == "" {
		return nil
	}
	return m.log.CompleteSession(m.sessionID)
}

// Apply moves one classified file into place. The returned bool is false when
// the file was skipped because of a permission or OS-level failure; such
// failures affect only that file.
func (m *Mover) Apply(result model.ClassificationResult) (model.MoveOperation, bool) {
	source := result.Record.Path
	destDir := filepath.Join(m.outputDir, filepath.FromSlash(result.Category.Path))
	dest := uniqueDestination(filepath.Join(destDir, result.Record.Name))

	op := model.MoveOperation{
		Source:      source,
		Destination: dest,
		Category:    result.Category.Name,
		Reasoning:   result.Reasoning,
		Timestamp:   time.Now(),
	}

	if m.dryRun {
		return op, true
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		m.logger.Warn("skipping file, cannot create destination directory",
			"file", result.Record.Name,
			"dir", destDir,
			"error", err)
		return model.MoveOperation{}, false
	}

	if err := moveFile(source, dest); err != nil {
		m.logger.Warn("skipping file, move failed",
			"file", result.Record.Name,
			"error", err)
		return model.MoveOperation{}, false
	}

	if m.sessionID != "" {
		if err := m.log.AppendOperation(m.sessionID, op); err != nil {
			// The move happened; losing the journal entry only costs
			// undo coverage for this one file.
			m.logger.Error("failed to journal move operation",
				"file", result.Record.Name,
				"error", err)
		}
	}

	return op, true
}

// uniqueDestination resolves filename collisions by appending _1, _2, ...
// before the extension until a free name is found at check time. A concurrent
// writer could still race this; the tool assumes a single sequential writer.
func uniqueDestination(path string) string {
	if _, err := os.Lstat(path); err != nil {
		return path
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if _, err := os.Lstat(candidate); err != nil {
			return candidate
		}
	}
}

// moveFile renames source to dest, falling back to copy-and-remove when the
// destination is on a different filesystem.
func moveFile(source, dest string) error {
	err := os.Rename(source, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(source, dest); err != nil {
		_ = os.Remove(dest)
		return err
	}
	return os.Remove(source)
}

func copyFile(source, dest string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
