package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arigatoexpress/DesktopOrganizer/internal/common"
	"github.com/arigatoexpress/DesktopOrganizer/internal/config"
	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
)

func testConfig() config.Scanner {
	return config.Scanner{
		MaxFileSizeMB:   50,
		MaxContentChars: 100,
		TextExtensions:  []string{".txt", ".md", ".go"},
		SkipExtensions:  []string{".lock", ".log"},
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func names(records []model.FileRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	sort.Strings(out)
	return out
}

func TestScanFatalErrors(t *testing.T) {
	s := New(testConfig(), nil)
	ctx := context.Background()

	t.Run("missing directory", func(t *testing.T) {
		_, err := s.Scan(ctx, filepath.Join(t.TempDir(), "nope"), Options{Recursive: true})
		assert.ErrorIs(t, err, common.ErrSourceNotFound)
	})

	t.Run("not a directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		write(t, file, "x")
		_, err := s.Scan(ctx, file, Options{Recursive: true})
		assert.ErrorIs(t, err, common.ErrNotDirectory)
	})
}

func TestScanFiltering(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "keep.txt"), "hello")
	write(t, filepath.Join(dir, "sub", "nested.md"), "nested")
	write(t, filepath.Join(dir, ".hidden.txt"), "secret")
	write(t, filepath.Join(dir, ".git", "config"), "secret")
	write(t, filepath.Join(dir, "sub", ".DS_Store"), "junk")
	write(t, filepath.Join(dir, "debug.log"), "skip me")
	write(t, filepath.Join(dir, "deps.lock"), "skip me")

	s := New(testConfig(), nil)
	records, err := s.Scan(context.Background(), dir, Options{Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.txt", "nested.md"}, names(records))
}

func TestScanNonRecursive(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "top.txt"), "top")
	write(t, filepath.Join(dir, "sub", "nested.txt"), "nested")

	s := New(testConfig(), nil)
	records, err := s.Scan(context.Background(), dir, Options{Recursive: false})
	require.NoError(t, err)

	assert.Equal(t, []string{"top.txt"}, names(records))
}

func TestScanExcludesDirs(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.txt"), "a")
	write(t, filepath.Join(dir, "Organized", "Misc", "b.txt"), "already organized")

	s := New(testConfig(), nil)
	records, err := s.Scan(context.Background(), dir, Options{
		Recursive:   true,
		ExcludeDirs: []string{filepath.Join(dir, "Organized")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, names(records))
}

func TestScanIgnoreGlobs(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "keep.txt"), "x")
	write(t, filepath.Join(dir, "build", "out.txt"), "x")
	write(t, filepath.Join(dir, "trace.tmp"), "x")

	cfg := testConfig()
	cfg.IgnoreGlobs = []string{"build/**", "*.tmp"}

	s := New(cfg, nil)
	records, err := s.Scan(context.Background(), dir, Options{Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.txt"}, names(records))
}

func TestScanRecordFields(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("abc ", 100) // longer than the 100 char cap
	write(t, filepath.Join(dir, "doc.txt"), content)
	write(t, filepath.Join(dir, "blob"), "\x89PNG\r\n\x1a\nrest-of-a-png")

	s := New(testConfig(), nil)
	records, err := s.Scan(context.Background(), dir, Options{Recursive: true})
	require.NoError(t, err)
	require.Len(t, records, 2)

	byName := make(map[string]model.FileRecord)
	for _, r := range records {
		byName[r.Name] = r
	}

	doc := byName["doc.txt"]
	assert.Equal(t, ".txt", doc.Extension)
	assert.Equal(t, int64(len(content)), doc.Size)
	assert.LessOrEqual(t, len(doc.Preview), 100)
	assert.True(t, doc.HasPreview())
	assert.Contains(t, doc.MIMEType, "text/plain")

	// No extension: no preview, MIME comes from sniffing.
	blob := byName["blob"]
	assert.False(t, blob.HasPreview())
	assert.Equal(t, "image/png", blob.MIMEType)
}

func TestScanSkipsTooLarge(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.MaxFileSizeMB = 1
	write(t, filepath.Join(dir, "small.txt"), "tiny")

	big := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(big, make([]byte, 2*1024*1024), 0o644))

	s := New(cfg, nil)
	records, err := s.Scan(context.Background(), dir, Options{Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"small.txt"}, names(records))
}

func TestScanProgressCallback(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.txt"), "a")
	write(t, filepath.Join(dir, "b.txt"), "b")

	var calls int
	s := New(testConfig(), nil)
	_, err := s.Scan(context.Background(), dir, Options{
		Recursive: true,
		Progress: func(count int, name string) {
			calls++
			assert.Equal(t, calls, count)
			assert.NotEmpty(t, name)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
