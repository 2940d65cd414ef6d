// Package scanner discovers files to organize and extracts the metadata and
// bounded content previews the classification engine works from.
package scanner

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arigatoexpress/DesktopOrganizer/internal/common"
	"github.com/arigatoexpress/DesktopOrganizer/internal/config"
	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
)

// sniffLen is how many leading bytes are used for MIME detection when the
// extension alone is not enough.
const sniffLen = 512

// Options controls a single scan.
type Options struct {
	// Recursive descends into subdirectories.
	Recursive bool
	// ExcludeDirs are absolute paths whose subtrees are skipped entirely,
	// typically the output directory when it nests inside the source.
	ExcludeDirs []string
	// Progress, when set, is called once per discovered file.
	Progress func(count int, name string)
}

// Scanner walks a directory tree and produces one FileRecord per file.
type Scanner struct {
	logger   *slog.Logger
	textExts map[string]struct{}
	skipExts map[string]struct{}
	cfg      config.Scanner
}

// New creates a Scanner with the given configuration.
func New(cfg config.Scanner, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scanner{
		cfg:      cfg,
		logger:   logger,
		textExts: make(map[string]struct{}, len(cfg.TextExtensions)),
		skipExts: make(map[string]struct{}, len(cfg.SkipExtensions)),
	}
	for _, ext := range cfg.TextExtensions {
		s.textExts[strings.ToLower(ext)] = struct{}{}
	}
	for _, ext := range cfg.SkipExtensions {
		s.skipExts[strings.ToLower(ext)] = struct{}{}
	}
	return s
}

// Scan walks dir and returns a record for every eligible file. Hidden
// entries are skipped: any entry whose name starts with '.', and any path
// containing a '.'-prefixed segment. The only fatal conditions are a missing
// source and a source that is not a directory; everything else skips the
// individual file.
func (s *Scanner) Scan(ctx context.Context, dir string, opts Options) ([]model.FileRecord, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.NewUserError(dir, common.ErrSourceNotFound)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, common.NewUserError(dir, common.ErrNotDirectory)
	}

	var records []model.FileRecord

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path == dir {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || s.excluded(path, opts.ExcludeDirs) || !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if s.ignored(dir, path) {
			return nil
		}

		record, ok := s.describe(path, d)
		if !ok {
			return nil
		}

		records = append(records, record)
		if opts.Progress != nil {
			opts.Progress(len(records), record.Name)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return records, nil
}

func (s *Scanner) excluded(path string, excludeDirs []string) bool {
	for _, ex := range excludeDirs {
		if ex != "" && path == ex {
			return true
		}
	}
	return false
}

// ignored matches the path (relative to the scan root, slash-separated)
// against the configured ignore globs.
func (s *Scanner) ignored(root, path string) bool {
	if len(s.cfg.IgnoreGlobs) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range s.cfg.IgnoreGlobs {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// describe builds the FileRecord for one file. A false return means the file
// is skipped: too large, a skip-listed extension, or unreadable.
func (s *Scanner) describe(path string, d fs.DirEntry) (model.FileRecord, bool) {
	info, err := d.Info()
	if err != nil {
		s.logger.Debug("skipping file, stat failed", "path", path, "error", err)
		return model.FileRecord{}, false
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, skip := s.skipExts[ext]; skip {
		return model.FileRecord{}, false
	}
	if s.cfg.MaxFileSizeMB > 0 && info.Size() > s.cfg.MaxFileSizeMB*1024*1024 {
		s.logger.Debug("skipping file, too large",
			"path", path,
			"size_mb", float64(info.Size())/(1024*1024))
		return model.FileRecord{}, false
	}

	record := model.FileRecord{
		Path:       path,
		Name:       d.Name(),
		Extension:  ext,
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
		MIMEType:   mime.TypeByExtension(ext),
	}

	if _, isText := s.textExts[ext]; isText {
		record.Preview = s.readPreview(path)
	}
	if record.MIMEType == "" {
		record.MIMEType = s.sniffMIME(path)
	}

	return record, true
}

// readPreview reads up to MaxContentChars bytes of text content.
func (s *Scanner) readPreview(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	limit := s.cfg.MaxContentChars
	if limit <= 0 {
		limit = 4000
	}

	buf := make([]byte, limit)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return ""
	}

	return strings.TrimSpace(strings.ToValidUTF8(string(buf[:n]), ""))
}

// sniffMIME detects the content type from the file's leading bytes.
func (s *Scanner) sniffMIME(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if n == 0 || (err != nil && !errors.Is(err, io.EOF)) {
		return ""
	}

	return http.DetectContentType(buf[:n])
}
