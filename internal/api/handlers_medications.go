package api

import (
	"errors"
	"strings"
	"time"

	"github.com/avelinne/dosetrack/internal/models"
	"github.com/avelinne/dosetrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetMedications(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	medications, err := handler.medicationService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load medications")
	}

	if strings.EqualFold(c.Query("sort"), "deadline") {
		medications = services.SortByDeadline(medications)
	}

	views := make([]medicationView, 0, len(medications))
	for _, medication := range medications {
		views = append(views, buildMedicationView(medication, handler.location))
	}
	return c.JSON(fiber.Map{"medications": views})
}

func (handler *Handler) CreateMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	payload := medicationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	medication, err := handler.medicationService.CreateForUser(user.ID, medicationInputFromPayload(payload))
	if err != nil {
		return medicationErrorResponse(c, err, "failed to add medication")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"medication": buildMedicationView(medication, handler.location),
	})
}

func (handler *Handler) UpdateMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	medicationID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}

	payload := medicationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	medication, err := handler.medicationService.UpdateForUser(medicationID, user.ID, medicationInputFromPayload(payload))
	if err != nil {
		return medicationErrorResponse(c, err, "failed to update medication")
	}
	return c.JSON(fiber.Map{
		"medication": buildMedicationView(medication, handler.location),
	})
}

func (handler *Handler) UpdateMedicationNotes(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	medicationID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}

	payload := notesPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.medicationService.UpdateNotesForUser(medicationID, user.ID, payload.Notes); err != nil {
		return medicationErrorResponse(c, err, "failed to update notes")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	medicationID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}

	if err := handler.medicationService.DeleteForUser(medicationID, user.ID); err != nil {
		return medicationErrorResponse(c, err, "failed to delete medication")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func medicationInputFromPayload(payload medicationPayload) services.MedicationInput {
	return services.MedicationInput{
		Name:         payload.Name,
		Dosage:       payload.Dosage,
		DeadlineTime: payload.DeadlineTime,
		Notes:        payload.Notes,
	}
}

func medicationErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrMedicationNotFound):
		return apiError(c, fiber.StatusNotFound, "medication not found")
	case errors.Is(err, services.ErrInvalidTimeFormat):
		return apiError(c, fiber.StatusBadRequest, "invalid deadline time")
	case errors.Is(err, services.ErrMedicationNameRequired),
		errors.Is(err, services.ErrMedicationDosageRequired):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	default:
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}

func buildMedicationView(medication models.Medication, location *time.Location) medicationView {
	return medicationView{
		ID:           medication.ID,
		Name:         medication.Name,
		Dosage:       medication.Dosage,
		DeadlineTime: medication.DeadlineTime,
		Deadline12h:  services.FormatTime12Hour(medication.DeadlineTime),
		Notes:        medication.Notes,
		CreatedAt:    medication.CreatedAt.In(location).Format(time.RFC3339),
	}
}
