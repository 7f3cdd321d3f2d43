package models

// DiagnosisType identifies which analysis pipeline produced a record.
type DiagnosisType string

const (
	DiagnosisTypeAudio DiagnosisType = "audio"
	DiagnosisTypeRash  DiagnosisType = "rash"
	DiagnosisTypeChat  DiagnosisType = "chat"
)

// ValidDiagnosisTypes is the closed set accepted by the API.
var ValidDiagnosisTypes = []DiagnosisType{
	DiagnosisTypeAudio,
	DiagnosisTypeRash,
	DiagnosisTypeChat,
}

// Severity is the closed label set stored on diagnoses.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var ValidSeverities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

// Valid reports whether s is one of the accepted severity labels.
func (s Severity) Valid() bool {
	for _, v := range ValidSeverities {
		if s == v {
			return true
		}
	}
	return false
}

// DiagnosisStatus tracks follow-up state. Records start as pending.
type DiagnosisStatus string

const (
	DiagnosisStatusPending  DiagnosisStatus = "pending"
	DiagnosisStatusReviewed DiagnosisStatus = "reviewed"
	DiagnosisStatusClosed   DiagnosisStatus = "closed"
)

// UserRole for the role claim set. Everyone is a plain user today; the
// doctor role exists for the review flow on the roadmap.
type UserRole string

const (
	UserRoleUser   UserRole = "user"
	UserRoleDoctor UserRole = "doctor"
	UserRoleAdmin  UserRole = "admin"
)
