package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ClassificationResponse
		wantErr bool
	}{
		{
			name:  "bare json",
			input: `{"category": "python", "confidence": 0.95, "reasoning": "imports numpy"}`,
			want: ClassificationResponse{
				Category:   "python",
				Confidence: 0.95,
				Reasoning:  "imports numpy",
			},
		},
		{
			name: "json fenced block",
			input: "```json\n" +
				`{"category": "work", "confidence": 0.8, "reasoning": "quarterly report"}` +
				"\n```",
			want: ClassificationResponse{
				Category:   "work",
				Confidence: 0.8,
				Reasoning:  "quarterly report",
			},
		},
		{
			name: "plain fenced block",
			input: "```\n" +
				`{"category": "photos", "confidence": 0.9, "reasoning": "EXIF data"}` +
				"\n```",
			want: ClassificationResponse{
				Category:   "photos",
				Confidence: 0.9,
				Reasoning:  "EXIF data",
			},
		},
		{
			name: "chatter around fenced block",
			input: "Sure! Here is the classification:\n```json\n" +
				`{"category": "data", "confidence": 0.7, "reasoning": "CSV columns"}` +
				"\n```\nLet me know if you need anything else.",
			want: ClassificationResponse{
				Category:   "data",
				Confidence: 0.7,
				Reasoning:  "CSV columns",
			},
		},
		{
			name:  "missing reasoning gets default",
			input: `{"category": "misc", "confidence": 0.5}`,
			want: ClassificationResponse{
				Category:   "misc",
				Confidence: 0.5,
				Reasoning:  "Classified by model",
			},
		},
		{
			name:  "confidence out of range passes through",
			input: `{"category": "misc", "confidence": 1.4, "reasoning": "very sure"}`,
			want: ClassificationResponse{
				Category:   "misc",
				Confidence: 1.4,
				Reasoning:  "very sure",
			},
		},
		{
			name:    "empty category",
			input:   `{"category": "", "confidence": 0.5, "reasoning": "unsure"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			input:   "I think this file is probably python code.",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClassification(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no wrapper",
			input: `{"category": "misc"}`,
			want:  `{"category": "misc"}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "anonymous fence",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "unterminated fence",
			input: "```json\n{\"a\": 1}",
			want:  `{"a": 1}`,
		},
		{
			name:  "surrounding whitespace",
			input: "   {\"a\": 1}\n\n",
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.input))
		})
	}
}
