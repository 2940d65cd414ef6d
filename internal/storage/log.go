// Package storage persists the session log that makes organize runs
// reversible.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
)

// document is the on-disk shape of the session log.
type document struct {
	Sessions []model.Session `json:"sessions"`
}

// SessionLog is the durable journal of organize sessions. It is logically
// append-only; physically the whole document is rewritten on every mutation,
// via write-to-temp-then-rename so a crash never truncates prior history.
// Single-writer usage per output directory is assumed.
type SessionLog struct {
	logger   *slog.Logger
	path     string
	sessions []model.Session
	corrupt  bool
}

// OpenSessionLog loads the log at path, creating an empty one if the file
// does not exist. An unreadable or unparseable log resets to empty; prior
// history is lost and Corrupt reports true so callers can warn the user.
func OpenSessionLog(path string, logger *slog.Logger) *SessionLog {
	if logger == nil {
		logger = slog.Default()
	}

	l := &SessionLog{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.corrupt = true
			logger.Warn("session log unreadable, starting empty",
				"path", path,
				"error", err)
		}
		return l
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		l.corrupt = true
		logger.Warn("session log corrupt, starting empty",
			"path", path,
			"error", err)
		return l
	}

	l.sessions = doc.Sessions
	return l
}

// Path returns the backing file path.
func (l *SessionLog) Path() string {
	return l.path
}

// Corrupt reports whether the backing store had to be reset on load.
func (l *SessionLog) Corrupt() bool {
	return l.corrupt
}

// Sessions returns a copy of all sessions, oldest first.
func (l *SessionLog) Sessions() []model.Session {
	out := make([]model.Session, len(l.sessions))
	copy(out, l.sessions)
	return out
}

// CreateSession starts a new, empty, in-progress session and persists it.
func (l *SessionLog) CreateSession(sourceDir, outputDir string) (model.Session, error) {
	session := model.Session{
		ID:              uuid.NewString(),
		Timestamp:       time.Now(),
		SourceDirectory: sourceDir,
		OutputDirectory: outputDir,
		Operations:      []model.MoveOperation{},
	}

	l.sessions = append(l.sessions, session)
	if err := l.save(); err != nil {
		return model.Session{}, err
	}
	return session, nil
}

// AppendOperation appends one move to an active session and persists the log.
// Operations are never reordered or mutated once appended.
func (l *SessionLog) AppendOperation(sessionID string, op model.MoveOperation) error {
	idx, err := l.find(sessionID)
	if err != nil {
		return err
	}
	if l.sessions[idx].Completed {
		return fmt.Errorf("session %s already completed", sessionID)
	}

	l.sessions[idx].Operations = append(l.sessions[idx].Operations, op)
	return l.save()
}

// CompleteSession marks a session completed, making it visible to undo.
func (l *SessionLog) CompleteSession(sessionID string) error {
	idx, err := l.find(sessionID)
	if err != nil {
		return err
	}

	l.sessions[idx].Completed = true
	return l.save()
}

// LastCompleted returns the most recently created completed session.
// In-progress sessions are invisible to undo.
func (l *SessionLog) LastCompleted() (model.Session, bool) {
	for i := len(l.sessions) - 1; i >= 0; i-- {
		if l.sessions[i].Completed {
			return l.sessions[i], true
		}
	}
	return model.Session{}, false
}

// RemoveSession deletes a session from the log and persists the change.
func (l *SessionLog) RemoveSession(sessionID string) error {
	kept := l.sessions[:0]
	for _, s := range l.sessions {
		if s.ID != sessionID {
			kept = append(kept, s)
		}
	}
	l.sessions = kept
	return l.save()
}

func (l *SessionLog) find(sessionID string) (int, error) {
	for i := range l.sessions {
		if l.sessions[i].ID == sessionID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("session %s not found", sessionID)
}

// save rewrites the whole document atomically.
func (l *SessionLog) save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	data, err := json.MarshalIndent(document{Sessions: l.sessions}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session log: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".organize_log-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp log file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write session log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp log file: %w", err)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace session log: %w", err)
	}
	return nil
}
