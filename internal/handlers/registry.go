package handlers

// AppHandlers holds every handler in the application.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	DiagnosisHandler *DiagnosisHandler
	ReportHandler    *ReportHandler
	HealthHandler    *HealthHandler
}
