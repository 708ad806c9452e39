package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/avelinne/dosetrack/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetExportSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	from, to, err := exportRange(c, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	}

	summary, err := handler.exportService.BuildSummary(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export summary")
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportHistoryJSON(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	from, to, err := exportRange(c, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	}

	entries, err := handler.exportService.BuildJSONEntries(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentDisposition, exportAttachment(handler.clock, "json"))
	return c.JSON(fiber.Map{"entries": entries})
}

func (handler *Handler) ExportHistoryCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	from, to, err := exportRange(c, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	}

	rows, err := handler.exportService.BuildCSVRows(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, exportAttachment(handler.clock, "csv"))
	return c.Send(buffer.Bytes())
}

func exportRange(c *fiber.Ctx, location *time.Location) (*time.Time, *time.Time, error) {
	from, err := parseDateQuery(c, "from", location)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDateQuery(c, "to", location)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func exportAttachment(clock services.Clock, extension string) string {
	return fmt.Sprintf(`attachment; filename="dose-history-%s.%s"`, services.DayKey(clock.Now()), extension)
}
