package dto

import "github.com/hari2128-cell/CureVox/internal/models"

// SymptomCheckRequest is the body of the free-text symptom endpoint.
type SymptomCheckRequest struct {
	Symptoms string `json:"symptoms" validate:"required,min=3,max=4000"`
}

// HistoryQuery is the paging input for diagnosis history.
type HistoryQuery struct {
	Page    int `form:"page" validate:"omitempty,min=1"`
	PerPage int `form:"per_page" validate:"omitempty,min=1,max=100"`
}

// Pagination is the envelope describing one page of results.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPagination computes the envelope for the given page over total rows.
func NewPagination(page, perPage int, total int64) Pagination {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// HistoryResponse is one page of a user's diagnosis history.
type HistoryResponse struct {
	Diagnoses  []models.Diagnosis `json:"diagnoses"`
	Pagination Pagination         `json:"pagination"`
}

// AnalysisResponse is returned from the upload and symptom endpoints.
// DiagnosisID and FileURL sit at the top level of the response envelope,
// not inside the analysis object.
type AnalysisResponse struct {
	DiagnosisID string                 `json:"-"`
	Condition   string                 `json:"condition"`
	Description string                 `json:"description"`
	Severity    models.Severity        `json:"severity"`
	Confidence  float64                `json:"confidence"`
	Recommends  []string               `json:"recommendations"`
	FileURL     string                 `json:"-"`
	Details     map[string]interface{} `json:"details,omitempty"`
}
