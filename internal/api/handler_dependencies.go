package api

import (
	"github.com/avelinne/dosetrack/internal/db"
	"github.com/avelinne/dosetrack/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.medicationService = services.NewMedicationService(handler.repositories.Medications)
	handler.ledgerService = services.NewLedgerService(
		handler.repositories.DoseLogs,
		handler.repositories.Medications,
		handler.blobs,
		handler.clock,
		handler.location,
		db.IsUniqueViolation,
	)
	handler.adherenceService = services.NewAdherenceService(
		handler.repositories.Medications,
		handler.repositories.DoseLogs,
		handler.clock,
		handler.location,
	)
	handler.alertService = services.NewAlertService(
		handler.repositories.Users,
		handler.repositories.Medications,
		handler.ledgerService,
		handler.clock,
		handler.location,
	)
	handler.exportService = services.NewExportService(handler.ledgerService, handler.location)
	return handler
}

// AlertWatcher exposes the missed-dose watcher so main can start its
// polling loop alongside the server.
func (handler *Handler) AlertWatcher() *services.AlertService {
	return handler.alertService
}
