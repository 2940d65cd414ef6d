package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseClassification extracts a classification from raw model output. The
// response is expected to embed a JSON object {category, confidence,
// reasoning}, optionally wrapped in a fenced code block. Any other shape is
// an error; callers treat it as "no answer".
func parseClassification(content string) (ClassificationResponse, error) {
	content = cleanMarkdownWrapper(content)

	var jsonResp struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return ClassificationResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if jsonResp.Category == "" {
		return ClassificationResponse{}, fmt.Errorf("no category found in response")
	}

	reasoning := jsonResp.Reasoning
	if reasoning == "" {
		reasoning = "Classified by model"
	}

	return ClassificationResponse{
		Category:   jsonResp.Category,
		Confidence: jsonResp.Confidence,
		Reasoning:  reasoning,
	}, nil
}

// cleanMarkdownWrapper strips an optional fenced code block ("```json ... ```"
// or plain "``` ... ```") from around the JSON payload.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
		return strings.TrimSpace(content)
	}

	if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+len("```"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
		return strings.TrimSpace(content)
	}

	return content
}
