package services

import (
	"github.com/hari2128-cell/CureVox/internal/analyzer"
	"github.com/hari2128-cell/CureVox/internal/auth"
	"github.com/hari2128-cell/CureVox/internal/identity"
	"github.com/hari2128-cell/CureVox/internal/metrics"
	"github.com/hari2128-cell/CureVox/internal/report"
	"github.com/hari2128-cell/CureVox/internal/repositories"
	"github.com/hari2128-cell/CureVox/internal/storage"
)

// ServiceContainer holds every service in the application.
type ServiceContainer struct {
	UserService      UserService
	AuthService      AuthService
	DiagnosisService DiagnosisService
	ReportService    ReportService
}

// NewServiceContainer wires the services against shared infrastructure.
func NewServiceContainer(
	verifier identity.Verifier,
	tokens *auth.TokenManager,
	store storage.Storage,
	collector *metrics.Collector,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	diagnosisRepo := repositories.NewDiagnosisRepository()
	reportRepo := repositories.NewReportRepository()

	userService := NewUserService(userRepo)
	diagnosisService := NewDiagnosisService(
		diagnosisRepo,
		store,
		analyzer.NewRashAnalyzer(),
		analyzer.NewAudioAnalyzer("cough"),
		analyzer.NewSymptomAnalyzer(),
		collector,
	)

	return &ServiceContainer{
		UserService:      userService,
		AuthService:      NewAuthService(verifier, tokens, userService, userRepo, sessionRepo),
		DiagnosisService: diagnosisService,
		ReportService:    NewReportService(userService, diagnosisRepo, reportRepo, report.NewGenerator(), store),
	}
}
