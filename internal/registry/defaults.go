package registry

import "github.com/arigatoexpress/DesktopOrganizer/internal/model"

// defaultCategories is the built-in category hierarchy, in declaration order.
// Declaration order is the tiebreak for lookup methods.
var defaultCategories = []model.Category{
	{
		ID:          "work",
		Name:        "Work Documents",
		Path:        "Documents/Work",
		Description: "Work-related documents, reports, presentations",
		Extensions:  []string{".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx", ".odt", ".ods", ".odp"},
		Keywords:    []string{"report", "meeting", "project", "proposal", "invoice", "contract", "agenda", "memo"},
	},
	{
		ID:          "personal",
		Name:        "Personal Documents",
		Path:        "Documents/Personal",
		Description: "Personal documents, letters, notes",
		Keywords:    []string{"personal", "diary", "journal", "letter", "note", "todo", "list"},
	},
	{
		ID:          "financial",
		Name:        "Financial Documents",
		Path:        "Documents/Financial",
		Description: "Financial records, receipts, tax documents",
		Keywords:    []string{"tax", "receipt", "invoice", "bank", "statement", "budget", "expense", "payment", "salary"},
	},
	{
		ID:          "legal",
		Name:        "Legal Documents",
		Path:        "Documents/Legal",
		Description: "Legal documents, contracts, agreements",
		Keywords:    []string{"legal", "contract", "agreement", "license", "terms", "policy", "nda", "court", "law"},
	},
	{
		ID:          "ebooks",
		Name:        "eBooks",
		Path:        "Documents/eBooks",
		Description: "Electronic books and publications",
		Extensions:  []string{".epub", ".mobi", ".azw", ".azw3"},
		Keywords:    []string{"ebook", "book", "novel", "guide", "manual"},
	},
	{
		ID:          "pdf",
		Name:        "PDFs",
		Path:        "Documents/PDFs",
		Description: "PDF documents",
		Extensions:  []string{".pdf"},
	},
	{
		ID:          "python",
		Name:        "Python Code",
		Path:        "Code/Python",
		Description: "Python source files",
		Extensions:  []string{".py", ".pyw", ".pyx", ".pxd", ".pyi"},
	},
	{
		ID:          "javascript",
		Name:        "JavaScript Code",
		Path:        "Code/JavaScript",
		Description: "JavaScript and TypeScript files",
		Extensions:  []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"},
	},
	{
		ID:          "web",
		Name:        "Web Files",
		Path:        "Code/Web",
		Description: "HTML, CSS, and web assets",
		Extensions:  []string{".html", ".htm", ".css", ".scss", ".sass", ".less", ".svg"},
	},
	{
		ID:          "code_other",
		Name:        "Other Code",
		Path:        "Code/Other",
		Description: "Other programming languages",
		Extensions: []string{
			".java", ".c", ".cpp", ".h", ".hpp", ".cs", ".go", ".rs", ".rb",
			".php", ".swift", ".kt", ".scala", ".r", ".m", ".mm", ".sql",
			".sh", ".bash", ".zsh", ".ps1", ".bat", ".cmd",
		},
	},
	{
		ID:          "config",
		Name:        "Config Files",
		Path:        "Code/Config",
		Description: "Configuration and settings files",
		Extensions: []string{
			".json", ".yaml", ".yml", ".toml", ".ini", ".cfg", ".conf",
			".env", ".properties", ".xml",
		},
		Keywords: []string{"config", "settings", "preferences"},
	},
	{
		ID:          "photos",
		Name:        "Photos",
		Path:        "Media/Photos",
		Description: "Image files and photographs",
		Extensions:  []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".heic", ".heif", ".raw", ".cr2", ".nef", ".arw"},
		Keywords:    []string{"photo", "image", "picture", "screenshot", "img", "pic"},
	},
	{
		ID:          "videos",
		Name:        "Videos",
		Path:        "Media/Videos",
		Description: "Video files",
		Extensions:  []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpeg", ".mpg", ".3gp"},
		Keywords:    []string{"video", "movie", "clip", "recording"},
	},
	{
		ID:          "music",
		Name:        "Music",
		Path:        "Media/Music",
		Description: "Audio and music files",
		Extensions:  []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a", ".aiff", ".alac"},
		Keywords:    []string{"music", "song", "audio", "track", "podcast"},
	},
	{
		ID:          "graphics",
		Name:        "Graphics",
		Path:        "Media/Graphics",
		Description: "Design and graphics files",
		Extensions:  []string{".psd", ".ai", ".eps", ".indd", ".sketch", ".fig", ".xd", ".afdesign", ".afphoto"},
		Keywords:    []string{"design", "graphic", "logo", "icon", "banner"},
	},
	{
		ID:          "archives",
		Name:        "Archives",
		Path:        "Archives",
		Description: "Compressed files and archives",
		Extensions:  []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".tgz", ".tbz2"},
		Keywords:    []string{"backup", "archive"},
	},
	{
		ID:          "data",
		Name:        "Data Files",
		Path:        "Data",
		Description: "Data files, spreadsheets, databases",
		Extensions:  []string{".csv", ".tsv", ".parquet", ".sqlite", ".db", ".mdb", ".accdb"},
		Keywords:    []string{"data", "dataset", "export", "import"},
	},
	{
		ID:          "installers",
		Name:        "Installers",
		Path:        "Applications/Installers",
		Description: "Application installers and packages",
		Extensions:  []string{".dmg", ".pkg", ".msi", ".exe", ".deb", ".rpm", ".appimage", ".snap"},
		Keywords:    []string{"install", "setup", "installer"},
	},
	{
		ID:          "misc",
		Name:        "Miscellaneous",
		Path:        "Misc",
		Description: "Uncategorized files",
	},
}

// NewDefault returns the built-in registry with "misc" as the fallback.
func NewDefault() *Registry {
	r, err := New(defaultCategories, "misc")
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return r
}
