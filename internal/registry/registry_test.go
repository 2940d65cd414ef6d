package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name       string
		categories []model.Category
		fallbackID string
		wantErr    string
	}{
		{
			name: "valid",
			categories: []model.Category{
				{ID: "a", Path: "A"},
				{ID: "b", Path: "B"},
			},
			fallbackID: "b",
		},
		{
			name: "duplicate id",
			categories: []model.Category{
				{ID: "a", Path: "A"},
				{ID: "a", Path: "B"},
			},
			fallbackID: "a",
			wantErr:    "duplicate category ID",
		},
		{
			name: "duplicate path",
			categories: []model.Category{
				{ID: "a", Path: "Same"},
				{ID: "b", Path: "Same"},
			},
			fallbackID: "a",
			wantErr:    "share path",
		},
		{
			name: "missing fallback",
			categories: []model.Category{
				{ID: "a", Path: "A"},
			},
			fallbackID: "zzz",
			wantErr:    "not in registry",
		},
		{
			name: "empty id",
			categories: []model.Category{
				{Name: "Nameless", Path: "X"},
			},
			fallbackID: "x",
			wantErr:    "has no ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.categories, tt.fallbackID)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.categories), r.Len())
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefault()

	assert.Equal(t, "misc", r.Fallback().ID)
	assert.Equal(t, len(defaultCategories), r.Len())

	// Paths must be unique; New enforces it, NewDefault must not panic.
	seen := make(map[string]bool)
	for _, cat := range r.All() {
		assert.False(t, seen[cat.Path], "path %q reused", cat.Path)
		seen[cat.Path] = true
	}
}

func TestByExtension(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		ext    string
		wantID string
		wantOK bool
	}{
		{".pdf", "pdf", true},
		{".PDF", "pdf", true},
		{".py", "python", true},
		{".docx", "work", true},
		{".zip", "archives", true},
		{".xyz", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			cat, ok := r.ByExtension(tt.ext)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantID, cat.ID)
			}
		})
	}
}

func TestByExtensionDeclarationOrderWins(t *testing.T) {
	// Two categories claiming the same extension: first declared wins.
	r, err := New([]model.Category{
		{ID: "first", Path: "First", Extensions: []string{".dup"}},
		{ID: "second", Path: "Second", Extensions: []string{".dup"}},
	}, "first")
	require.NoError(t, err)

	cat, ok := r.ByExtension(".dup")
	require.True(t, ok)
	assert.Equal(t, "first", cat.ID)
}

func TestByKeyword(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		name     string
		filename string
		wantID   string
		wantKW   string
		wantOK   bool
	}{
		{"todo file", "notes_todo.xyz", "personal", "note", true},
		{"case insensitive", "MY-INVOICE-2024.xyz", "work", "invoice", true},
		{"screenshot", "screenshot_2024.xyz", "photos", "screenshot", true},
		{"no match", "zna9qq.xyz", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, kw, ok := r.ByKeyword(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantID, cat.ID)
				assert.Equal(t, tt.wantKW, kw)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	r := NewDefault()

	tests := []struct {
		name     string
		reported string
		wantID   string
		wantOK   bool
	}{
		{"exact", "python", "python", true},
		{"exact uppercase", "PYTHON", "python", true},
		{"surrounding whitespace", "  misc  ", "misc", true},
		{"registry id inside reported", "python code files", "python", true},
		{"reported inside registry id", "javasc", "javascript", true},
		{"nothing close", "quantum-flux", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, ok := r.Resolve(tt.reported)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantID, cat.ID)
			}
		})
	}
}

func TestManifest(t *testing.T) {
	r := NewDefault()
	manifest := r.Manifest()

	lines := strings.Split(manifest, "\n")
	assert.Len(t, lines, r.Len())
	assert.Contains(t, manifest, "- work: Work-related documents, reports, presentations (path: Documents/Work)")
	assert.Contains(t, manifest, "- misc: Uncategorized files (path: Misc)")
}

func TestAllReturnsCopy(t *testing.T) {
	r := NewDefault()
	all := r.All()
	all[0].ID = "mutated"

	fresh := r.All()
	assert.NotEqual(t, "mutated", fresh[0].ID)
}
