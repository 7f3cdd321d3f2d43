package analyzer

import (
	"context"
	"crypto/sha1"
	"encoding/hex"

	"github.com/hari2128-cell/CureVox/internal/models"
)

// AudioAnalyzer classifies respiratory recordings. The heuristic is a
// deterministic placeholder keyed on content length so repeated uploads of
// the same file always agree.
type AudioAnalyzer struct {
	Mode string // "cough" or "breath"
}

func NewAudioAnalyzer(mode string) *AudioAnalyzer {
	return &AudioAnalyzer{Mode: mode}
}

func (a *AudioAnalyzer) Analyze(_ context.Context, data []byte) (*Result, error) {
	if len(data) == 0 {
		return &Result{
			Condition:   "no audio",
			Description: "The recording contains no audio data.",
			Severity:    models.SeverityLow,
			Confidence:  0,
			Recommendations: []string{
				"Re-record in a quiet environment and upload again",
			},
			Details: map[string]interface{}{"mode": a.Mode, "size_bytes": 0},
		}, nil
	}

	sum := sha1.Sum(data)
	hash := hex.EncodeToString(sum[:])[:10]

	var (
		label      string
		confidence float64
		severity   models.Severity
		desc       string
		recs       []string
	)
	switch len(data) % 3 {
	case 0:
		label = "normal"
		confidence = 85
		severity = models.SeverityLow
		desc = "No concerning respiratory indicators detected."
		recs = []string{"No action needed", "Repeat the check if symptoms change"}
	case 1:
		label = "possible abnormality"
		confidence = 66
		severity = models.SeverityMedium
		desc = "Mild respiratory irregularity observed. Monitor symptoms."
		recs = []string{"Drink plenty of fluids", "Get adequate rest", "Consult a doctor if fever develops"}
	default:
		label = "needs review"
		confidence = 50
		severity = models.SeverityMedium
		desc = "The recording could not be classified with confidence."
		recs = []string{"Upload a longer, clearer recording", "Consult a doctor if symptoms persist"}
	}

	return &Result{
		Condition:       label,
		Description:     desc,
		Severity:        severity,
		Confidence:      clampConfidence(confidence),
		Recommendations: recs,
		Details: map[string]interface{}{
			"mode":        a.Mode,
			"sample_hash": hash,
			"size_bytes":  len(data),
		},
	}, nil
}
