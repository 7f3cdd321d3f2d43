package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/hari2128-cell/CureVox/internal/models"

	"github.com/hari2128-cell/CureVox/pkg/apperrors"
)

// RashAnalyzer grades skin photos by average redness. Red channel dominance
// over green and blue approximates inflammation; the thresholds come from
// manual calibration against sample photos.
type RashAnalyzer struct{}

func NewRashAnalyzer() *RashAnalyzer {
	return &RashAnalyzer{}
}

func (a *RashAnalyzer) Analyze(_ context.Context, data []byte) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.ErrProcessing(fmt.Errorf("decode image: %w", err))
	}

	avgR, avgG, avgB := averageRGB(img)
	redScore := math.Max(0, avgR-(avgG+avgB)/2)

	var (
		condition  string
		severity   models.Severity
		confidence float64
		desc       string
		recs       []string
	)
	switch {
	case redScore > 80:
		condition = "severe redness"
		severity = models.SeverityHigh
		confidence = 75
		desc = "Pronounced inflammation across the photographed area."
		recs = []string{"Consult a doctor as soon as possible", "Avoid scratching the affected area"}
	case redScore > 45:
		condition = "moderate redness"
		severity = models.SeverityMedium
		confidence = 70
		desc = "The image shows signs of mild dermatitis with redness and slight swelling."
		recs = []string{
			"Apply hydrocortisone cream 2-3 times daily",
			"Keep the area clean and dry",
			"Schedule follow-up in 3 days if no improvement",
		}
	case redScore > 25:
		condition = "mild redness"
		severity = models.SeverityLow
		confidence = 65
		desc = "Slight irritation detected. Keep area clean and monitor."
		recs = []string{"Keep the area clean and dry", "Monitor for spreading or swelling"}
	default:
		condition = "normal"
		severity = models.SeverityLow
		confidence = 80
		desc = "No visible inflammation detected."
		recs = []string{"No action needed"}
	}

	return &Result{
		Condition:       condition,
		Description:     desc,
		Severity:        severity,
		Confidence:      clampConfidence(confidence),
		Recommendations: recs,
		Details: map[string]interface{}{
			"avg_r":     round1(avgR),
			"avg_g":     round1(avgG),
			"avg_b":     round1(avgB),
			"red_score": round1(redScore),
		},
	}, nil
}

func averageRGB(img image.Image) (r, g, b float64) {
	bounds := img.Bounds()
	count := float64(bounds.Dx() * bounds.Dy())
	if count == 0 {
		return 0, 0, 0
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			r += float64(pr >> 8)
			g += float64(pg >> 8)
			b += float64(pb >> 8)
		}
	}
	return r / count, g / count, b / count
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
