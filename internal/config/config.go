// Package config provides configuration loading for the organizer. All
// components receive an explicit Config value; there is no process-wide
// default singleton.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend configures the classifier backend.
type Backend struct {
	Provider        string        `mapstructure:"provider"`
	Model           string        `mapstructure:"model"`
	Host            string        `mapstructure:"host"`
	APIKey          string        `mapstructure:"api_key"`
	MaxContentChars int           `mapstructure:"max_content_chars"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Temperature     float64       `mapstructure:"temperature"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Scanner configures file discovery and content extraction.
type Scanner struct {
	MaxFileSizeMB   int64    `mapstructure:"max_file_size_mb"`
	MaxContentChars int      `mapstructure:"max_content_chars"`
	TextExtensions  []string `mapstructure:"text_extensions"`
	SkipExtensions  []string `mapstructure:"skip_extensions"`
	IgnoreGlobs     []string `mapstructure:"ignore_globs"`
}

// Output configures where organized files and the session log live.
type Output struct {
	DirName     string `mapstructure:"dir_name"`
	LogFileName string `mapstructure:"log_file_name"`
}

// Config is the full application configuration.
type Config struct {
	Backend Backend `mapstructure:"backend"`
	Scanner Scanner `mapstructure:"scanner"`
	Output  Output  `mapstructure:"output"`
}

// SetDefaults registers default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend.provider", "ollama")
	v.SetDefault("backend.model", "llama3.2")
	v.SetDefault("backend.host", "http://localhost:11434")
	v.SetDefault("backend.max_content_chars", 2000)
	v.SetDefault("backend.max_tokens", 200)
	v.SetDefault("backend.temperature", 0.1)
	v.SetDefault("backend.timeout", 30*time.Second)

	v.SetDefault("scanner.max_file_size_mb", 50)
	v.SetDefault("scanner.max_content_chars", 4000)
	v.SetDefault("scanner.text_extensions", []string{
		".txt", ".md", ".rst", ".json", ".yaml", ".yml", ".xml", ".csv",
		".py", ".js", ".ts", ".jsx", ".tsx", ".java", ".c", ".cpp", ".h",
		".go", ".rs", ".rb", ".php", ".html", ".css", ".scss", ".sql",
		".sh", ".bash", ".zsh", ".ps1", ".bat", ".cmd",
		".ini", ".cfg", ".conf", ".toml", ".env",
	})
	v.SetDefault("scanner.skip_extensions", []string{
		".dll", ".so", ".dylib", ".bin",
		".iso", ".img",
		".lock", ".log",
	})
	v.SetDefault("scanner.ignore_globs", []string{})

	v.SetDefault("output.dir_name", "Organized")
	v.SetDefault("output.log_file_name", "organize_log.json")
}

// Load unmarshals the viper instance into a Config.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	// Allow "$OPENAI_API_KEY" style references in the config file.
	cfg.Backend.APIKey = os.ExpandEnv(cfg.Backend.APIKey)
	return cfg, nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
