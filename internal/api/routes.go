package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/role", handler.AuthRequired, handler.SwitchRole)

	medications := api.Group("/medications", handler.AuthRequired)
	medications.Get("", handler.GetMedications)
	medications.Post("", handler.CaretakerOnly, handler.CreateMedication)
	medications.Put("/:id", handler.CaretakerOnly, handler.UpdateMedication)
	medications.Patch("/:id/notes", handler.CaretakerOnly, handler.UpdateMedicationNotes)
	medications.Delete("/:id", handler.CaretakerOnly, handler.DeleteMedication)

	doses := api.Group("/doses", handler.AuthRequired)
	doses.Get("/today", handler.GetTodaysDoses)
	doses.Post("/:id/taken", handler.PatientOnly, handler.MarkDoseTaken)

	api.Get("/history", handler.AuthRequired, handler.GetHistory)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/adherence", handler.GetAdherenceStats)

	alerts := api.Group("/alerts", handler.AuthRequired, handler.CaretakerOnly)
	alerts.Get("", handler.GetAlerts)
	alerts.Post("/dismiss", handler.DismissAlerts)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.GetExportSummary)
	export.Get("/csv", handler.ExportHistoryCSV)
	export.Get("/json", handler.ExportHistoryJSON)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
