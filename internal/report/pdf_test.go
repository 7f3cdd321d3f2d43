package report

import (
	"testing"
	"time"

	"github.com/hari2128-cell/CureVox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator()

	dob := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	user := &models.User{
		Name:        "Test Patient",
		Email:       "patient@example.com",
		PhoneNumber: "+10000000000",
		Gender:      "female",
		BloodGroup:  "O+",
		DateOfBirth: &dob,
		Height:      170,
		Weight:      65,
		Allergies:   "penicillin",
	}

	diagnoses := []models.Diagnosis{
		{
			DiagnosisType:   models.DiagnosisTypeRash,
			Title:           "Skin Rash Analysis",
			Severity:        models.SeverityLow,
			ConfidenceScore: 78.5,
			Status:          models.DiagnosisStatusPending,
			DoctorNote:      "Re-check in one week.",
		},
	}

	data, err := g.Generate(user, diagnoses)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerator_EmptyHistory(t *testing.T) {
	g := NewGenerator()

	data, err := g.Generate(&models.User{Name: "Empty", Email: "e@example.com"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	long := "a very long diagnosis title that will not fit in the table cell"
	assert.Len(t, truncate(long, 40), 40)
}
