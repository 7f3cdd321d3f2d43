package models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Diagnosis is one stored analysis event. Rows are immutable after creation
// except for Status and DoctorNote (the review flow).
type Diagnosis struct {
	BaseModel
	UserID          string          `gorm:"type:uuid;not null;index" json:"user_id"`
	DiagnosisType   DiagnosisType   `gorm:"size:50;not null" json:"diagnosis_type"`
	Title           string          `gorm:"size:200;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Symptoms        string          `gorm:"type:text" json:"symptoms"`
	Severity        Severity        `gorm:"size:20" json:"severity"`
	ConfidenceScore float64         `json:"confidence_score"` // 0..100, enforced by the service
	Recommendations pq.StringArray  `gorm:"type:text[]" json:"recommendations"`
	AnalysisResult  datatypes.JSON  `gorm:"type:jsonb" json:"analysis_result,omitempty"`
	FilePath        string          `gorm:"size:500" json:"-"`
	FileURL         string          `gorm:"size:500" json:"file_url,omitempty"`
	DoctorNote      string          `gorm:"type:text" json:"doctor_note,omitempty"`
	Status          DiagnosisStatus `gorm:"size:20;default:'pending'" json:"status"`
}

// HealthReport records a generated PDF so old reports stay downloadable.
type HealthReport struct {
	BaseModel
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	FileName string `gorm:"size:255;not null;uniqueIndex" json:"file_name"`
	FilePath string `gorm:"size:500;not null" json:"-"`
}
