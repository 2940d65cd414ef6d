// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"time"
)

// FileRecord describes a single file discovered by the scanner. A record is
// produced once per file per run and is immutable thereafter.
type FileRecord struct {
	ModifiedAt time.Time
	Path       string
	Name       string
	Extension  string
	Preview    string
	MIMEType   string
	Size       int64
}

// SizeMB returns the file size in megabytes.
func (r FileRecord) SizeMB() float64 {
	return float64(r.Size) / (1024 * 1024)
}

// HasPreview reports whether any content was extracted for this file.
func (r FileRecord) HasPreview() bool {
	return r.Preview != ""
}

func (r FileRecord) String() string {
	return fmt.Sprintf("FileRecord(%s, %.2fMB)", r.Name, r.SizeMB())
}
