package services

import (
	"errors"
	"testing"
	"time"

	"github.com/avelinne/dosetrack/internal/models"
)

type stubAdherenceMedications struct {
	count int64
	err   error
}

func (stub *stubAdherenceMedications) CountByUser(userID uint) (int64, error) {
	return stub.count, stub.err
}

type stubAdherenceLogs struct {
	logs []models.DoseLog
	err  error
}

func (stub *stubAdherenceLogs) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DoseLog, error) {
	return stub.logs, stub.err
}

func adherenceDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}

func logsFor(t *testing.T, medicationIDs []uint, days ...string) []models.DoseLog {
	t.Helper()
	logs := make([]models.DoseLog, 0, len(days)*len(medicationIDs))
	for _, raw := range days {
		for _, medicationID := range medicationIDs {
			logs = append(logs, models.DoseLog{
				MedicationID: medicationID,
				UserID:       1,
				TakenDate:    adherenceDay(t, raw),
				Status:       models.DoseStatusTaken,
			})
		}
	}
	return logs
}

func TestComputeStatsSevenDayWindow(t *testing.T) {
	// Saturday 2026-08-29; a 7 day window spans Sunday the 23rd through
	// Saturday the 29th.
	now := time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)
	logs := logsFor(t, []uint{1, 2},
		"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28")

	service := NewAdherenceService(
		&stubAdherenceMedications{count: 2},
		&stubAdherenceLogs{logs: logs},
		FixedClock{Instant: now},
		time.UTC,
	)

	stats, err := service.ComputeStats(1, 7)
	if err != nil {
		t.Fatalf("ComputeStats() unexpected error: %v", err)
	}
	if stats.TotalDays != 7 {
		t.Fatalf("expected 7 total days, got %d", stats.TotalDays)
	}
	if stats.TakenDays != 5 {
		t.Fatalf("expected 5 taken days, got %d", stats.TakenDays)
	}
	if stats.MissedDays != 2 {
		t.Fatalf("expected 2 missed days, got %d", stats.MissedDays)
	}
	if stats.AdherenceRate != 71 {
		t.Fatalf("expected adherence rate 71, got %d", stats.AdherenceRate)
	}
}

func TestComputeStatsPartialDayDoesNotCount(t *testing.T) {
	now := time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)
	// Two medications but only one logged per day.
	logs := logsFor(t, []uint{1}, "2026-08-28", "2026-08-29")

	service := NewAdherenceService(
		&stubAdherenceMedications{count: 2},
		&stubAdherenceLogs{logs: logs},
		FixedClock{Instant: now},
		time.UTC,
	)

	stats, err := service.ComputeStats(1, 7)
	if err != nil {
		t.Fatalf("ComputeStats() unexpected error: %v", err)
	}
	if stats.TakenDays != 0 {
		t.Fatalf("expected no fully taken days, got %d", stats.TakenDays)
	}
	if stats.AdherenceRate != 0 {
		t.Fatalf("expected adherence rate 0, got %d", stats.AdherenceRate)
	}
}

func TestComputeStatsWeeklyRollupKeyedByMonday(t *testing.T) {
	// Saturday 2026-08-29; a 7 day window crosses the Monday boundary on
	// the 24th, so there are two week rows.
	now := time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)
	logs := logsFor(t, []uint{1}, "2026-08-23", "2026-08-24", "2026-08-29")

	service := NewAdherenceService(
		&stubAdherenceMedications{count: 1},
		&stubAdherenceLogs{logs: logs},
		FixedClock{Instant: now},
		time.UTC,
	)

	stats, err := service.ComputeStats(1, 7)
	if err != nil {
		t.Fatalf("ComputeStats() unexpected error: %v", err)
	}
	if len(stats.WeeklyData) != 2 {
		t.Fatalf("expected 2 week rows, got %d", len(stats.WeeklyData))
	}

	first := stats.WeeklyData[0]
	if first.WeekStart != "2026-08-17" {
		t.Fatalf("expected first week keyed 2026-08-17, got %q", first.WeekStart)
	}
	if first.Taken != 1 || first.Total != 1 {
		t.Fatalf("expected first week 1/1, got %d/%d", first.Taken, first.Total)
	}

	second := stats.WeeklyData[1]
	if second.WeekStart != "2026-08-24" {
		t.Fatalf("expected second week keyed 2026-08-24, got %q", second.WeekStart)
	}
	if second.Taken != 2 || second.Total != 6 {
		t.Fatalf("expected second week 2/6, got %d/%d", second.Taken, second.Total)
	}
}

func TestComputeStatsNoMedications(t *testing.T) {
	service := NewAdherenceService(
		&stubAdherenceMedications{count: 0},
		&stubAdherenceLogs{},
		FixedClock{Instant: time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)},
		time.UTC,
	)

	stats, err := service.ComputeStats(1, 30)
	if err != nil {
		t.Fatalf("ComputeStats() unexpected error: %v", err)
	}
	if stats.TotalDays != 0 || stats.TakenDays != 0 || stats.AdherenceRate != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if stats.WeeklyData == nil || len(stats.WeeklyData) != 0 {
		t.Fatalf("expected empty weekly data slice, got %v", stats.WeeklyData)
	}
}

func TestComputeStatsNonPositiveWindow(t *testing.T) {
	service := NewAdherenceService(
		&stubAdherenceMedications{count: 3},
		&stubAdherenceLogs{},
		FixedClock{Instant: time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)},
		time.UTC,
	)

	stats, err := service.ComputeStats(1, 0)
	if err != nil {
		t.Fatalf("ComputeStats() unexpected error: %v", err)
	}
	if stats.TotalDays != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}

func TestComputeStatsRepositoryFailure(t *testing.T) {
	service := NewAdherenceService(
		&stubAdherenceMedications{count: 1},
		&stubAdherenceLogs{err: errors.New("db down")},
		FixedClock{Instant: time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)},
		time.UTC,
	)

	if _, err := service.ComputeStats(1, 7); !errors.Is(err, ErrAdherenceStatsFailed) {
		t.Fatalf("expected ErrAdherenceStatsFailed, got %v", err)
	}
}
