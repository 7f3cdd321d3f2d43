// Package analyzer contains the diagnostic engines behind the assessment
// endpoints. The current implementations are deterministic heuristics; real
// models plug in behind the same interface without touching the handlers.
package analyzer

import (
	"context"

	"github.com/hari2128-cell/CureVox/internal/models"
)

// Result is the outcome of one analysis run, regardless of modality.
type Result struct {
	Condition       string                 `json:"condition"`
	Description     string                 `json:"description"`
	Severity        models.Severity        `json:"severity"`
	Confidence      float64                `json:"confidence"` // percentage, 0..100
	Recommendations []string               `json:"recommendations"`
	Details         map[string]interface{} `json:"details,omitempty"`
}

// FileAnalyzer examines an uploaded file's raw contents.
type FileAnalyzer interface {
	Analyze(ctx context.Context, data []byte) (*Result, error)
}

// TextAnalyzer examines free-text symptom descriptions.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) (*Result, error)
}

// clampConfidence keeps confidence inside the reportable range.
func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
