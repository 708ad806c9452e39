package api

import (
	"errors"
	"io"

	"github.com/avelinne/dosetrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetTodaysDoses(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	medications, err := handler.medicationService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load medications")
	}
	takenIDs, err := handler.ledgerService.TodaysTakenIDs(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load dose log")
	}

	now := handler.clock.Now().In(handler.location)
	nowTimeOfDay := services.TimeOfDay(now)
	classified := services.ClassifyDoses(services.SortByDeadline(medications), takenIDs, nowTimeOfDay)
	summary := services.SummarizeDoses(classified)

	views := make([]classifiedDoseView, 0, len(classified))
	for _, dose := range classified {
		view := classifiedDoseView{
			Medication: buildMedicationView(dose.Medication, handler.location),
			Status:     dose.Status,
		}
		if dose.Status == services.DoseStatusPending {
			remaining := services.RemainingUntilDeadline(dose.Medication.DeadlineTime, nowTimeOfDay)
			view.RemainingSeconds = int64(remaining.Seconds())
		}
		views = append(views, view)
	}

	return c.JSON(fiber.Map{
		"date":  services.DayKey(now),
		"doses": views,
		"summary": fiber.Map{
			"total":   summary.Total,
			"taken":   summary.Taken,
			"missed":  summary.Missed,
			"pending": summary.Pending,
		},
	})
}

func (handler *Handler) MarkDoseTaken(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	medicationID, err := parseUintParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}

	if _, err := handler.medicationService.FetchForUser(medicationID, user.ID); err != nil {
		if errors.Is(err, services.ErrMedicationNotFound) {
			return apiError(c, fiber.StatusNotFound, "medication not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load medication")
	}

	proof, err := readProofUpload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid proof photo")
	}

	if err := handler.ledgerService.MarkTaken(user.ID, medicationID, proof); err != nil {
		if errors.Is(err, services.ErrProofUploadFailed) {
			return apiError(c, fiber.StatusInternalServerError, "failed to store proof photo")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to record dose")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// readProofUpload pulls the optional "photo" multipart part. A missing part
// is fine; an oversized or unreadable one is not.
func readProofUpload(c *fiber.Ctx) (*services.ProofUpload, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return nil, nil
	}
	if fileHeader.Size > maxProofSize {
		return nil, errors.New("proof photo too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProofSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxProofSize {
		return nil, errors.New("proof photo too large")
	}
	return &services.ProofUpload{FileName: fileHeader.Filename, Data: data}, nil
}
