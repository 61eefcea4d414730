package container

import (
	"log/slog"

	app "floorplan-analyzer/internal/application"
	"floorplan-analyzer/internal/domain/port"
)

type Container struct {
	SessionService  *app.SessionService
	AnalysisService *app.AnalysisService
}

// New собирает сервисы приложения. maxDimension — предел стороны рабочего
// разрешения (0 — по умолчанию).
func New(sessionRepo port.SessionRepository, analyzer port.FloorPlanAnalyzer, maxDimension int, logger *slog.Logger) *Container {
	sessionService := app.NewSessionService(sessionRepo)
	analysisService := app.NewAnalysisService(analyzer, maxDimension, logger)

	return &Container{
		SessionService:  sessionService,
		AnalysisService: analysisService,
	}
}
