package llm

import (
	"context"
)

// Client defines the interface for classifier backend providers.
type Client interface {
	// Probe checks whether the backend is reachable. The engine calls it
	// exactly once per lifetime and caches the outcome.
	Probe(ctx context.Context) error
	// Classify sends a classification prompt and returns the parsed result.
	Classify(ctx context.Context, prompt string) (ClassificationResponse, error)
}

// ClassificationResponse contains the backend's classification result. The
// category is the raw name reported by the model; resolution against the
// registry happens in the engine.
type ClassificationResponse struct {
	Category   string
	Reasoning  string
	Confidence float64
}

// systemPrompt instructs the model to answer with a bare JSON object. Models
// routinely ignore the formatting instruction, so responses are stripped of
// markdown fences before parsing.
const systemPrompt = `You are a file categorization assistant. Your job is to analyze file information and categorize files into the appropriate category.

You must respond with ONLY a valid JSON object in this exact format:
{"category": "category_name", "confidence": 0.95, "reasoning": "brief explanation"}

The category must be one of the valid categories provided. The confidence should be between 0.0 and 1.0.`
