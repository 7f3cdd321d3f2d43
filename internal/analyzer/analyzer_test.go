package analyzer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hari2128-cell/CureVox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioAnalyzer_EmptyInput(t *testing.T) {
	a := NewAudioAnalyzer("cough")

	res, err := a.Analyze(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "no audio", res.Condition)
	assert.Zero(t, res.Confidence)
}

func TestAudioAnalyzer_Deterministic(t *testing.T) {
	a := NewAudioAnalyzer("breath")
	data := bytes.Repeat([]byte{0x42}, 300) // divisible by 3

	first, err := a.Analyze(context.Background(), data)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "normal", first.Condition)
	assert.Equal(t, 85.0, first.Confidence)
}

func TestAudioAnalyzer_LengthClasses(t *testing.T) {
	a := NewAudioAnalyzer("cough")

	cases := []struct {
		size  int
		label string
		conf  float64
	}{
		{300, "normal", 85},
		{301, "possible abnormality", 66},
		{302, "needs review", 50},
	}
	for _, tc := range cases {
		res, err := a.Analyze(context.Background(), make([]byte, tc.size))
		require.NoError(t, err)
		assert.Equal(t, tc.label, res.Condition, "size %d", tc.size)
		assert.Equal(t, tc.conf, res.Confidence, "size %d", tc.size)
	}
}

func TestAudioAnalyzer_ConfidenceRange(t *testing.T) {
	a := NewAudioAnalyzer("cough")
	for size := 0; size < 6; size++ {
		res, err := a.Analyze(context.Background(), make([]byte, size))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Confidence, 0.0)
		assert.LessOrEqual(t, res.Confidence, 100.0)
	}
}

func encodePNG(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRashAnalyzer_RedDominance(t *testing.T) {
	a := NewRashAnalyzer()

	red, err := a.Analyze(context.Background(), encodePNG(t, color.RGBA{R: 220, G: 40, B: 40, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, "severe redness", red.Condition)
	assert.Equal(t, models.SeverityHigh, red.Severity)

	gray, err := a.Analyze(context.Background(), encodePNG(t, color.RGBA{R: 120, G: 120, B: 120, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, "normal", gray.Condition)
	assert.Equal(t, models.SeverityLow, gray.Severity)
}

func TestRashAnalyzer_InvalidImage(t *testing.T) {
	a := NewRashAnalyzer()

	_, err := a.Analyze(context.Background(), []byte("not an image"))
	assert.Error(t, err)
}

func TestSymptomAnalyzer_Tags(t *testing.T) {
	a := NewSymptomAnalyzer()

	res, err := a.AnalyzeText(context.Background(), "Dry cough and high temperature since Monday")
	require.NoError(t, err)
	assert.Equal(t, "cough, fever", res.Condition)
	assert.Equal(t, models.SeverityLow, res.Severity)

	res, err = a.AnalyzeText(context.Background(), "Severe chest pain and shortness of breath")
	require.NoError(t, err)
	assert.Equal(t, models.SeverityHigh, res.Severity)

	res, err = a.AnalyzeText(context.Background(), "Feeling a bit tired")
	require.NoError(t, err)
	assert.Equal(t, "general", res.Condition)
}
