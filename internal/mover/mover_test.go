package mover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
	"github.com/arigatoexpress/DesktopOrganizer/internal/storage"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testResult(path string, category model.Category) model.ClassificationResult {
	return model.ClassificationResult{
		Record: model.FileRecord{
			Path:      path,
			Name:      filepath.Base(path),
			Extension: filepath.Ext(path),
		},
		Category:   category,
		Confidence: 0.9,
		Reasoning:  "test",
		Method:     model.MethodExtension,
	}
}

var workCategory = model.Category{
	ID:   "work",
	Name: "Work Documents",
	Path: "Documents/Work",
}

func TestApplyMovesFileAndJournals(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	sourcePath := filepath.Join(sourceDir, "report.docx")
	writeFile(t, sourcePath, "contents")

	log := storage.OpenSessionLog(filepath.Join(outputDir, "organize_log.json"), nil)
	m := New(outputDir, log, false, nil)
	require.NoError(t, m.StartSession(sourceDir))

	op, ok := m.Apply(testResult(sourcePath, workCategory))
	require.True(t, ok)
	require.NoError(t, m.EndSession())

	wantDest := filepath.Join(outputDir, "Documents", "Work", "report.docx")
	assert.Equal(t, wantDest, op.Destination)
	assert.NoFileExists(t, sourcePath)
	data, err := os.ReadFile(wantDest)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))

	session, found := log.LastCompleted()
	require.True(t, found)
	require.Len(t, session.Operations, 1)
	assert.Equal(t, sourcePath, session.Operations[0].Source)
	assert.Equal(t, wantDest, session.Operations[0].Destination)
	assert.Equal(t, "Work Documents", session.Operations[0].Category)
}

func TestApplyCollisionSuffixes(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	log := storage.OpenSessionLog(filepath.Join(outputDir, "organize_log.json"), nil)
	m := New(outputDir, log, false, nil)
	require.NoError(t, m.StartSession(sourceDir))

	var dests []string
	for i, content := range []string{"one", "two", "three"} {
		// Distinct files that all want the same destination name.
		src := filepath.Join(sourceDir, "dup", string(rune('a'+i)), "notes.txt")
		writeFile(t, src, content)

		op, ok := m.Apply(testResult(src, workCategory))
		require.True(t, ok)
		dests = append(dests, op.Destination)
	}

	assert.Equal(t, filepath.Join(outputDir, "Documents", "Work", "notes.txt"), dests[0])
	assert.Equal(t, filepath.Join(outputDir, "Documents", "Work", "notes_1.txt"), dests[1])
	assert.Equal(t, filepath.Join(outputDir, "Documents", "Work", "notes_2.txt"), dests[2])

	// No overwrites: each file keeps its own bytes.
	for i, want := range []string{"one", "two", "three"} {
		data, err := os.ReadFile(dests[i])
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestApplyDryRun(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	sourcePath := filepath.Join(sourceDir, "report.docx")
	writeFile(t, sourcePath, "contents")

	logPath := filepath.Join(outputDir, "organize_log.json")
	log := storage.OpenSessionLog(logPath, nil)
	m := New(outputDir, log, true, nil)
	require.NoError(t, m.StartSession(sourceDir))

	op, ok := m.Apply(testResult(sourcePath, workCategory))
	require.True(t, ok)
	require.NoError(t, m.EndSession())

	// Same destination plan as a real run, zero mutations.
	assert.Equal(t, filepath.Join(outputDir, "Documents", "Work", "report.docx"), op.Destination)
	assert.FileExists(t, sourcePath)
	assert.NoFileExists(t, op.Destination)
	assert.NoFileExists(t, logPath)
	assert.Empty(t, log.Sessions())
}

func TestApplySkipsOnMoveFailure(t *testing.T) {
	outputDir := t.TempDir()
	log := storage.OpenSessionLog(filepath.Join(outputDir, "organize_log.json"), nil)
	m := New(outputDir, log, false, nil)
	require.NoError(t, m.StartSession("/nowhere"))

	// Source does not exist: the move fails, the file is skipped.
	_, ok := m.Apply(testResult("/nowhere/ghost.docx", workCategory))
	assert.False(t, ok)
	require.NoError(t, m.EndSession())

	session, found := log.LastCompleted()
	require.True(t, found)
	assert.Empty(t, session.Operations)
}

func TestUniqueDestinationPicksNextFreeSuffix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, "notes_1.txt"), "x")
	writeFile(t, filepath.Join(dir, "notes_3.txt"), "x")

	got := uniqueDestination(filepath.Join(dir, "notes.txt"))
	assert.Equal(t, filepath.Join(dir, "notes_2.txt"), got)
}
