package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/avelinne/dosetrack/internal/models"
)

var ErrAdherenceStatsFailed = errors.New("compute adherence stats failed")

type WeeklyAdherence struct {
	WeekStart string `json:"date"`
	Taken     int    `json:"taken"`
	Total     int    `json:"total"`
}

// AdherenceStats is derived fresh from the dose logs on every query;
// nothing here is persisted.
type AdherenceStats struct {
	TotalDays     int               `json:"totalDays"`
	TakenDays     int               `json:"takenDays"`
	MissedDays    int               `json:"missedDays"`
	AdherenceRate int               `json:"adherenceRate"`
	WeeklyData    []WeeklyAdherence `json:"weeklyData"`
}

type AdherenceMedicationReader interface {
	CountByUser(userID uint) (int64, error)
}

type AdherenceLogReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DoseLog, error)
}

type AdherenceService struct {
	medications AdherenceMedicationReader
	logs        AdherenceLogReader
	clock       Clock
	location    *time.Location
}

func NewAdherenceService(medications AdherenceMedicationReader, logs AdherenceLogReader, clock Clock, location *time.Location) *AdherenceService {
	if location == nil {
		location = time.UTC
	}
	return &AdherenceService{
		medications: medications,
		logs:        logs,
		clock:       clock,
		location:    location,
	}
}

// ComputeStats folds the owner's dose logs over the windowDays calendar
// days ending today into daily buckets, then rolls those up into week rows
// keyed by Monday. The medication count is the owner's current total and
// applies to every bucket, including days before a medication existed; a
// day counts as fully taken only when every current medication was logged.
func (service *AdherenceService) ComputeStats(userID uint, windowDays int) (AdherenceStats, error) {
	if windowDays <= 0 {
		return AdherenceStats{WeeklyData: []WeeklyAdherence{}}, nil
	}

	medicationCount, err := service.medications.CountByUser(userID)
	if err != nil {
		return AdherenceStats{}, ErrAdherenceStatsFailed
	}
	if medicationCount == 0 {
		return AdherenceStats{WeeklyData: []WeeklyAdherence{}}, nil
	}

	today := DateAtLocation(service.clock.Now(), service.location)
	windowStart := today.AddDate(0, 0, -(windowDays - 1))
	windowEnd := today.AddDate(0, 0, 1)

	logs, err := service.logs.ListByUserRange(userID, &windowStart, &windowEnd)
	if err != nil {
		return AdherenceStats{}, ErrAdherenceStatsFailed
	}

	takenPerDay := make(map[string]int, windowDays)
	for _, entry := range logs {
		takenPerDay[DayKey(DateAtLocation(entry.TakenDate, service.location))]++
	}

	total := int(medicationCount)
	stats := AdherenceStats{TotalDays: windowDays}
	weekTotals := make(map[string]*WeeklyAdherence)

	for day := windowStart; !day.After(today); day = day.AddDate(0, 0, 1) {
		taken := takenPerDay[DayKey(day)]
		if taken == total {
			stats.TakenDays++
		}

		weekKey := DayKey(weekStart(day))
		week, ok := weekTotals[weekKey]
		if !ok {
			week = &WeeklyAdherence{WeekStart: weekKey}
			weekTotals[weekKey] = week
		}
		week.Taken += taken
		week.Total += total
	}

	stats.MissedDays = stats.TotalDays - stats.TakenDays
	stats.AdherenceRate = roundedRate(stats.TakenDays, stats.TotalDays)

	stats.WeeklyData = make([]WeeklyAdherence, 0, len(weekTotals))
	for _, week := range weekTotals {
		stats.WeeklyData = append(stats.WeeklyData, *week)
	}
	sort.Slice(stats.WeeklyData, func(i, j int) bool {
		return stats.WeeklyData[i].WeekStart < stats.WeeklyData[j].WeekStart
	})

	return stats, nil
}

// weekStart maps a date to the Monday of its week; Sunday belongs to the
// previous Monday.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func roundedRate(taken int, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(taken) / float64(total) * 100))
}
