// Package engine implements the classification cascade that resolves every
// file to exactly one category.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arigatoexpress/DesktopOrganizer/internal/common"
	"github.com/arigatoexpress/DesktopOrganizer/internal/llm"
	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
	"github.com/arigatoexpress/DesktopOrganizer/internal/registry"
)

// ProbeState is the cached outcome of the one-time backend availability probe.
type ProbeState int

// Probe states. Unknown only exists before construction finishes; a built
// Classifier is always Available or Unavailable.
const (
	ProbeUnknown ProbeState = iota
	ProbeAvailable
	ProbeUnavailable
)

func (s ProbeState) String() string {
	switch s {
	case ProbeAvailable:
		return "available"
	case ProbeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Confidence values for the rule-based tiers.
const (
	extensionConfidence = 0.9
	keywordConfidence   = 0.7
	fallbackConfidence  = 0.3
)

// Config holds configuration for the classification engine.
type Config struct {
	// MaxContentChars caps the preview length sent to the backend.
	MaxContentChars int
	// DisableBackend skips the probe entirely and pins the engine to the
	// rule-based tiers (fast mode).
	DisableBackend bool
}

// Classifier resolves a FileRecord to a category using a prioritized cascade:
// model, extension, keyword, fallback. Classify never fails; a backend that
// is down or talking nonsense only costs the model tier.
type Classifier struct {
	client   llm.Client
	registry *registry.Registry
	logger   *slog.Logger
	cfg      Config
	probe    ProbeState
}

// New creates a classification engine. The backend is probed once, here; the
// result is cached for the engine's lifetime and never re-evaluated, even if
// individual calls fail later.
func New(ctx context.Context, client llm.Client, reg *registry.Registry, cfg Config, logger *slog.Logger) *Classifier {
	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = 2000
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Classifier{
		client:   client,
		registry: reg,
		logger:   logger,
		cfg:      cfg,
		probe:    ProbeUnavailable,
	}

	switch {
	case cfg.DisableBackend:
		logger.Info("backend disabled, using rule-based classification only")
	case client == nil:
		logger.Info("no backend configured, using rule-based classification only")
	default:
		err := common.WithRetry(ctx, func() error {
			if probeErr := client.Probe(ctx); probeErr != nil {
				return &common.RetryableError{Err: probeErr, Retryable: true}
			}
			return nil
		}, common.RetryOptions{MaxAttempts: 2, InitialDelay: 500 * time.Millisecond, MaxDelay: 2 * time.Second})

		if err != nil {
			c.probe = ProbeUnavailable
			logger.Warn("backend probe failed, model tier disabled for this run", "error", err)
		} else {
			c.probe = ProbeAvailable
			logger.Info("backend probe succeeded, model tier enabled")
		}
	}

	return c
}

// BackendState returns the cached probe outcome.
func (c *Classifier) BackendState() ProbeState {
	return c.probe
}

// Classify resolves a single record through the cascade. It always returns a
// result; the fallback tier cannot miss.
func (c *Classifier) Classify(ctx context.Context, record model.FileRecord) model.ClassificationResult {
	if result, ok := c.classifyWithModel(ctx, record); ok {
		return result
	}
	if result, ok := c.classifyByExtension(record); ok {
		return result
	}
	if result, ok := c.classifyByKeyword(record); ok {
		return result
	}

	return model.ClassificationResult{
		Record:     record,
		Category:   c.registry.Fallback(),
		Confidence: fallbackConfidence,
		Reasoning:  "No matching category found, using fallback",
		Method:     model.MethodFallback,
	}
}

// classifyWithModel attempts the model tier. A false return means "no
// answer": the backend is disabled, the file has no preview, or the response
// could not be validated. None of these are errors to the caller.
func (c *Classifier) classifyWithModel(ctx context.Context, record model.FileRecord) (model.ClassificationResult, bool) {
	if c.probe != ProbeAvailable || !record.HasPreview() {
		return model.ClassificationResult{}, false
	}

	response, err := c.client.Classify(ctx, c.buildPrompt(record))
	if err != nil {
		c.logger.Debug("model tier discarded",
			"file", record.Name,
			"error", err)
		return model.ClassificationResult{}, false
	}

	category, ok := c.registry.Resolve(response.Category)
	if !ok {
		c.logger.Debug("model tier discarded, unknown category",
			"file", record.Name,
			"reported", response.Category)
		return model.ClassificationResult{}, false
	}

	return model.ClassificationResult{
		Record:     record,
		Category:   category,
		Confidence: model.ClampConfidence(response.Confidence),
		Reasoning:  response.Reasoning,
		Method:     model.MethodModel,
	}, true
}

func (c *Classifier) classifyByExtension(record model.FileRecord) (model.ClassificationResult, bool) {
	category, ok := c.registry.ByExtension(record.Extension)
	if !ok {
		return model.ClassificationResult{}, false
	}

	return model.ClassificationResult{
		Record:     record,
		Category:   category,
		Confidence: extensionConfidence,
		Reasoning:  fmt.Sprintf("Matched by file extension: %s", record.Extension),
		Method:     model.MethodExtension,
	}, true
}

func (c *Classifier) classifyByKeyword(record model.FileRecord) (model.ClassificationResult, bool) {
	category, keyword, ok := c.registry.ByKeyword(record.Name)
	if !ok {
		return model.ClassificationResult{}, false
	}

	return model.ClassificationResult{
		Record:     record,
		Category:   category,
		Confidence: keywordConfidence,
		Reasoning:  fmt.Sprintf("Matched by filename keyword: %s", keyword),
		Method:     model.MethodKeyword,
	}, true
}

// buildPrompt renders the per-file classification prompt: file metadata, a
// bounded content preview, and the full category manifest.
func (c *Classifier) buildPrompt(record model.FileRecord) string {
	preview := record.Preview
	if len(preview) > c.cfg.MaxContentChars {
		preview = preview[:c.cfg.MaxContentChars]
	}

	mimeType := record.MIMEType
	if mimeType == "" {
		mimeType = "Unknown"
	}

	return fmt.Sprintf(`Categorize this file based on its information:

**File Name:** %s
**Extension:** %s
**Size:** %.2f MB
**MIME Type:** %s

**Content Preview:**
`+"```"+`
%s
`+"```"+`

**Available Categories:**
%s

Analyze the file name, extension, and content to determine the best category. Respond with JSON only.`,
		record.Name,
		record.Extension,
		record.SizeMB(),
		mimeType,
		preview,
		c.registry.Manifest())
}
