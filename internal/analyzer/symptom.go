package analyzer

import (
	"context"
	"strings"

	"github.com/hari2128-cell/CureVox/internal/models"
)

// highSeverityMarkers escalate any description to high severity regardless
// of tags.
var highSeverityMarkers = []string{
	"severe", "difficulty", "bleeding", "chest pain", "shortness",
}

// SymptomAnalyzer tags free-text symptom descriptions and estimates
// severity by keyword matching.
type SymptomAnalyzer struct{}

func NewSymptomAnalyzer() *SymptomAnalyzer {
	return &SymptomAnalyzer{}
}

func (a *SymptomAnalyzer) AnalyzeText(_ context.Context, text string) (*Result, error) {
	t := strings.ToLower(text)

	var tags []string
	if strings.Contains(t, "cough") {
		tags = append(tags, "cough")
	}
	if strings.Contains(t, "fever") || strings.Contains(t, "temperature") {
		tags = append(tags, "fever")
	}
	if strings.Contains(t, "rash") || strings.Contains(t, "skin") {
		tags = append(tags, "rash")
	}
	if len(tags) == 0 {
		tags = []string{"general"}
	}

	severity := models.SeverityLow
	confidence := 60.0
	recs := []string{"Monitor symptoms", "Consult a specialist if symptoms persist"}
	for _, marker := range highSeverityMarkers {
		if strings.Contains(t, marker) {
			severity = models.SeverityHigh
			confidence = 70
			recs = []string{"Seek medical attention promptly"}
			break
		}
	}

	raw := text
	if len(raw) > 400 {
		raw = raw[:400]
	}

	return &Result{
		Condition:       strings.Join(tags, ", "),
		Description:     "Keyword-based symptom triage.",
		Severity:        severity,
		Confidence:      clampConfidence(confidence),
		Recommendations: recs,
		Details: map[string]interface{}{
			"tags": tags,
			"raw":  raw,
		},
	}, nil
}
