package integration_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"github.com/hari2128-cell/CureVox/internal/models"
	"github.com/hari2128-cell/CureVox/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidPNG encodes an 8x8 image filled with one color.
func solidPNG(t *testing.T, c color.RGBA) []byte {
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

type analysisEnvelope struct {
	Success     bool   `json:"success"`
	DiagnosisID string `json:"diagnosis_id"`
	FileURL     string `json:"file_url"`
	Analysis    struct {
		Condition  string   `json:"condition"`
		Severity   string   `json:"severity"`
		Confidence float64  `json:"confidence"`
		Recommends []string `json:"recommendations"`
	} `json:"analysis"`
}

func TestUploadRash_RedImage(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 10)
	data := solidPNG(t, color.RGBA{R: 255, A: 255})

	res, body := ts.SendMultipart(t, "/api/diagnosis/rash/upload", user.AccessToken, "image", "rash.png", data)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp analysisEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "severe redness", resp.Analysis.Condition)
	assert.Equal(t, "high", resp.Analysis.Severity)
	assert.GreaterOrEqual(t, resp.Analysis.Confidence, 0.0)
	assert.LessOrEqual(t, resp.Analysis.Confidence, 100.0)
	assert.NotEmpty(t, resp.DiagnosisID)
	assert.NotEmpty(t, resp.FileURL)

	var count int64
	require.NoError(t, ts.DB.Model(&models.Diagnosis{}).
		Where("user_id = ? AND diagnosis_type = ?", user.ID, models.DiagnosisTypeRash).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUploadRash_RejectsWrongExtension(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 11)

	res, body := ts.SendMultipart(t, "/api/diagnosis/rash/upload", user.AccessToken, "image", "notes.txt", []byte("hello"))
	require.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "INVALID_FILE_TYPE")
}

func TestUploadRash_MissingFile(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 12)

	// Wrong multipart field name, so the expected "image" part is absent.
	res, body := ts.SendMultipart(t, "/api/diagnosis/rash/upload", user.AccessToken, "file", "rash.png", solidPNG(t, color.RGBA{A: 255}))
	require.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "NO_FILE")
}

func TestUploadAudio_EmptyRecording(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 13)

	res, body := ts.SendMultipart(t, "/api/diagnosis/audio/upload", user.AccessToken, "audio", "cough.wav", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp analysisEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "no audio", resp.Analysis.Condition)
	assert.Equal(t, 0.0, resp.Analysis.Confidence)
}

func TestUploadAudio_ClassifiesByContent(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 14)

	res, body := ts.SendMultipart(t, "/api/diagnosis/audio/upload", user.AccessToken, "audio", "cough.wav", make([]byte, 300))
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp analysisEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "normal", resp.Analysis.Condition)
	assert.Equal(t, 85.0, resp.Analysis.Confidence)
}

func TestCheckSymptoms_FlagsHighSeverity(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 15)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/diagnosis/symptoms", user.AccessToken, map[string]interface{}{
		"symptoms": "severe cough with chest pain and fever",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp analysisEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "high", resp.Analysis.Severity)
	assert.NotEmpty(t, resp.Analysis.Recommends)
}

func TestHistory_Pagination(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 16)

	for i := 0; i < 15; i++ {
		row := &models.Diagnosis{
			UserID:        user.ID,
			DiagnosisType: models.DiagnosisTypeChat,
			Title:         "Symptom check",
			Symptoms:      "cough",
			Severity:      models.SeverityLow,
			Status:        models.DiagnosisStatusPending,
		}
		require.NoError(t, ts.DB.Create(row).Error)
	}

	res, body := ts.SendRequest(t, http.MethodGet, "/api/diagnosis/history?page=2&per_page=10", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Diagnoses  []json.RawMessage `json:"diagnoses"`
			Pagination struct {
				Page    int   `json:"page"`
				PerPage int   `json:"per_page"`
				Total   int64 `json:"total"`
				Pages   int   `json:"pages"`
				HasNext bool  `json:"has_next"`
				HasPrev bool  `json:"has_prev"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Len(t, resp.Data.Diagnoses, 5)
	assert.Equal(t, 2, resp.Data.Pagination.Page)
	assert.Equal(t, int64(15), resp.Data.Pagination.Total)
	assert.Equal(t, 2, resp.Data.Pagination.Pages)
	assert.False(t, resp.Data.Pagination.HasNext)
	assert.True(t, resp.Data.Pagination.HasPrev)
}

func TestHistory_EmptyPage(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 17)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/diagnosis/history", user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"diagnoses":[]`)
	assert.Contains(t, body, `"total":0`)
}

func TestHistory_IsScopedToUser(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	owner := ts.SignInTestUser(t, 18)
	other := ts.SignInTestUser(t, 19)

	require.NoError(t, ts.DB.Create(&models.Diagnosis{
		UserID:        owner.ID,
		DiagnosisType: models.DiagnosisTypeChat,
		Title:         "Symptom check",
		Severity:      models.SeverityLow,
		Status:        models.DiagnosisStatusPending,
	}).Error)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/diagnosis/history", other.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"total":0`)
}

func TestReport_GenerateAndDownload(t *testing.T) {
	helpers.RequireDatabase(t)
	ts := GetTestServer(t)
	ts.ClearTables(t)

	user := ts.SignInTestUser(t, 20)

	_, body := ts.SendRequest(t, http.MethodPost, "/api/diagnosis/symptoms", user.AccessToken, map[string]interface{}{
		"symptoms": "mild cough for two days",
	})
	require.Contains(t, body, `"success":true`)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/report/generate", user.AccessToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var resp struct {
		Data struct {
			FileName    string `json:"file_name"`
			DownloadURL string `json:"download_url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.Data.FileName)

	res, body = ts.SendRequest(t, http.MethodGet, resp.Data.DownloadURL, user.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, bytes.HasPrefix([]byte(body), []byte("%PDF")))
}
