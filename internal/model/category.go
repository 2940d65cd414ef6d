package model

// Category represents a named bucket files can be organized into. The ID is
// the stable key used in backend prompts and lookups; Path is the target
// subdirectory relative to the output root.
type Category struct {
	ID          string
	Name        string
	Path        string
	Description string
	Extensions  []string
	Keywords    []string
}
