package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avelinne/dosetrack/internal/models"
)

const (
	DoseStatusPending = "pending"
	DoseStatusTaken   = "taken"
	DoseStatusMissed  = "missed"
)

var ErrInvalidTimeFormat = errors.New("invalid deadline time format")

type ClassifiedDose struct {
	Medication models.Medication
	Status     string
}

type DoseSummary struct {
	Total   int
	Taken   int
	Missed  int
	Pending int
}

// ClassifyDoses assigns each medication exactly one of taken, missed, or
// pending against the current wall-clock time of day. Taken wins over the
// deadline; a dose exactly at its deadline is still pending. Deadlines are
// compared lexically as "HH:MM" strings, which is why ParseDeadline must
// have validated them at ingestion.
func ClassifyDoses(medications []models.Medication, takenIDs map[uint]struct{}, nowTimeOfDay string) []ClassifiedDose {
	classified := make([]ClassifiedDose, 0, len(medications))
	for _, medication := range medications {
		status := DoseStatusPending
		if _, taken := takenIDs[medication.ID]; taken {
			status = DoseStatusTaken
		} else if medication.DeadlineTime < nowTimeOfDay {
			status = DoseStatusMissed
		}
		classified = append(classified, ClassifiedDose{Medication: medication, Status: status})
	}
	return classified
}

func SummarizeDoses(classified []ClassifiedDose) DoseSummary {
	summary := DoseSummary{Total: len(classified)}
	for _, dose := range classified {
		switch dose.Status {
		case DoseStatusTaken:
			summary.Taken++
		case DoseStatusMissed:
			summary.Missed++
		default:
			summary.Pending++
		}
	}
	return summary
}

// SortByDeadline orders medications by deadline ascending. Equal deadlines
// keep their input order; there is no secondary key.
func SortByDeadline(medications []models.Medication) []models.Medication {
	sorted := make([]models.Medication, len(medications))
	copy(sorted, medications)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DeadlineTime < sorted[j].DeadlineTime
	})
	return sorted
}

// RemainingUntilDeadline anchors both the deadline and "now" to today and
// returns the wall-clock gap, or zero once the deadline has passed. A
// deadline of 00:05 when now is 23:55 therefore reads as overdue rather
// than tomorrow; the schedule resets at midnight.
func RemainingUntilDeadline(deadlineTime string, nowTimeOfDay string) time.Duration {
	if deadlineTime <= nowTimeOfDay {
		return 0
	}

	deadlineHour, deadlineMinute, err := ParseDeadline(deadlineTime)
	if err != nil {
		return 0
	}
	nowHour, nowMinute, err := ParseDeadline(nowTimeOfDay)
	if err != nil {
		return 0
	}

	minutes := (deadlineHour-nowHour)*60 + (deadlineMinute - nowMinute)
	if minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

// ParseDeadline validates an "HH:MM" deadline at the ingestion boundary and
// returns its components. Classification assumes deadlines already passed
// through here.
func ParseDeadline(deadlineTime string) (int, int, error) {
	parts := strings.Split(deadlineTime, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, deadlineTime)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, deadlineTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, deadlineTime)
	}
	return hour, minute, nil
}

// FormatTime12Hour renders "14:30" as "2:30 PM" for display payloads.
func FormatTime12Hour(deadlineTime string) string {
	hour, minute, err := ParseDeadline(deadlineTime)
	if err != nil {
		return deadlineTime
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, minute, period)
}
