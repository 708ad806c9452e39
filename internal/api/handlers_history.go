package api

import (
	"time"

	"github.com/avelinne/dosetrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	from, err := parseDateQuery(c, "from", handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseDateQuery(c, "to", handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}

	entries, err := handler.ledgerService.HistoricalEntries(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load history")
	}

	views := make([]historyEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, historyEntryView{
			ID:           entry.Log.ID,
			MedicationID: entry.Log.MedicationID,
			Medication:   entry.MedicationName,
			Dosage:       entry.MedicationDosage,
			DeadlineTime: entry.DeadlineTime,
			TakenDate:    services.DayKey(entry.Log.TakenDate),
			Status:       entry.Log.Status,
			PhotoURL:     entry.Log.PhotoURL,
			CreatedAt:    entry.Log.CreatedAt.In(handler.location).Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{"entries": views})
}

func (handler *Handler) GetAdherenceStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	windowDays := c.QueryInt("days", defaultStatsDays)
	switch windowDays {
	case 7, 30, 90:
	default:
		windowDays = defaultStatsDays
	}

	stats, err := handler.adherenceService.ComputeStats(user.ID, windowDays)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to compute adherence stats")
	}
	return c.JSON(stats)
}
