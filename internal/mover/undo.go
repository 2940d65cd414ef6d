package mover

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arigatoexpress/DesktopOrganizer/internal/common"
	"github.com/arigatoexpress/DesktopOrganizer/internal/storage"
)

// RestoredMove records one file put back during an undo.
type RestoredMove struct {
	From string
	To   string
}

// UndoResult summarizes an undo run. Success is false if any per-operation
// error occurred; every operation is attempted regardless of earlier
// failures.
type UndoResult struct {
	SessionID string
	Restored  []RestoredMove
	Errors    []string
	Success   bool
}

// Undo reverses the most recent completed session using only the persisted
// log. Operations are processed in reverse append order, best-effort. When
// all operations have been attempted, empty directories under the session's
// output root are pruned (the root itself is kept) and the session is removed
// from the log whether or not errors occurred.
func Undo(log *storage.SessionLog, logger *slog.Logger) (UndoResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	session, ok := log.LastCompleted()
	if !ok {
		return UndoResult{}, common.ErrNoSessions
	}

	result := UndoResult{SessionID: session.ID}

	for i := len(session.Operations) - 1; i >= 0; i-- {
		op := session.Operations[i]

		if _, err := os.Lstat(op.Destination); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("file not found: %s", op.Destination))
			continue
		}

		if err := os.MkdirAll(filepath.Dir(op.Source), 0o755); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to restore %s: %v", filepath.Base(op.Destination), err))
			continue
		}

		if err := moveFile(op.Destination, op.Source); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to restore %s: %v", filepath.Base(op.Destination), err))
			continue
		}

		result.Restored = append(result.Restored, RestoredMove{From: op.Destination, To: op.Source})
	}

	pruneEmptyDirs(session.OutputDirectory, session.OutputDirectory)

	// The session is consumed even on partial failure; a second undo must
	// not replay it.
	if err := log.RemoveSession(session.ID); err != nil {
		logger.Error("failed to remove undone session from log",
			"session_id", session.ID,
			"error", err)
	}

	result.Success = len(result.Errors) == 0
	logger.Info("undo finished",
		"session_id", session.ID,
		"restored", len(result.Restored),
		"errors", len(result.Errors))

	return result, nil
}

// pruneEmptyDirs recursively removes now-empty directories under dir,
// leaving root itself in place. Emptiness is re-checked at each step without
// any transaction boundary; not safe under concurrent external mutation.
func pruneEmptyDirs(dir, root string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			pruneEmptyDirs(filepath.Join(dir, entry.Name()), root)
		}
	}

	if dir == root {
		return
	}

	entries, err = os.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		_ = os.Remove(dir)
	}
}
