package services

import (
	"time"
)

const exportDateLayout = "2006-01-02"

var ExportCSVHeaders = []string{
	"Date",
	"Medication",
	"Dosage",
	"Deadline",
	"Status",
	"Proof photo",
	"Logged at",
}

type ExportHistoryReader interface {
	HistoricalEntries(userID uint, from *time.Time, to *time.Time) ([]HistoryEntry, error)
}

type ExportService struct {
	history  ExportHistoryReader
	location *time.Location
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

type ExportJSONEntry struct {
	Date       string `json:"date"`
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Deadline   string `json:"deadline"`
	Status     string `json:"status"`
	PhotoURL   string `json:"photo_url,omitempty"`
	LoggedAt   string `json:"logged_at"`
}

func NewExportService(history ExportHistoryReader, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{
		history:  history,
		location: location,
	}
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time) (ExportSummary, error) {
	entries, err := service.history.HistoricalEntries(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}

	first := entries[0].Log.TakenDate
	last := entries[0].Log.TakenDate
	for _, entry := range entries[1:] {
		if entry.Log.TakenDate.Before(first) {
			first = entry.Log.TakenDate
		}
		if entry.Log.TakenDate.After(last) {
			last = entry.Log.TakenDate
		}
	}

	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     DateAtLocation(first, service.location).Format(exportDateLayout),
		DateTo:       DateAtLocation(last, service.location).Format(exportDateLayout),
	}, nil
}

func (service *ExportService) BuildJSONEntries(userID uint, from *time.Time, to *time.Time) ([]ExportJSONEntry, error) {
	entries, err := service.history.HistoricalEntries(userID, from, to)
	if err != nil {
		return nil, err
	}

	exported := make([]ExportJSONEntry, 0, len(entries))
	for _, entry := range entries {
		exported = append(exported, ExportJSONEntry{
			Date:       DateAtLocation(entry.Log.TakenDate, service.location).Format(exportDateLayout),
			Medication: entry.MedicationName,
			Dosage:     entry.MedicationDosage,
			Deadline:   entry.DeadlineTime,
			Status:     entry.Log.Status,
			PhotoURL:   entry.Log.PhotoURL,
			LoggedAt:   entry.Log.CreatedAt.In(service.location).Format(time.RFC3339),
		})
	}
	return exported, nil
}

func (service *ExportService) BuildCSVRows(userID uint, from *time.Time, to *time.Time) ([][]string, error) {
	entries, err := service.history.HistoricalEntries(userID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			DateAtLocation(entry.Log.TakenDate, service.location).Format(exportDateLayout),
			entry.MedicationName,
			entry.MedicationDosage,
			entry.DeadlineTime,
			entry.Log.Status,
			csvYesNo(entry.Log.PhotoURL != ""),
			entry.Log.CreatedAt.In(service.location).Format(time.RFC3339),
		})
	}
	return rows, nil
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
