package llm

import (
	"fmt"
	"strings"
	"time"
)

// Config holds configuration for a backend client.
type Config struct {
	Provider    string
	Model       string
	Host        string
	APIKey      string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// NewClient creates a backend client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ollama":
		return newOllamaClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend provider: %s", cfg.Provider)
	}
}
