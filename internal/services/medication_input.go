package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/avelinne/dosetrack/internal/models"
)

var (
	ErrMedicationNameRequired   = errors.New("medication name required")
	ErrMedicationDosageRequired = errors.New("medication dosage required")
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
var jsSchemePattern = regexp.MustCompile(`(?i)javascript:`)
var eventAttributePattern = regexp.MustCompile(`(?i)on\w+=`)
var looseTimePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?$`)

type MedicationInput struct {
	Name         string
	Dosage       string
	DeadlineTime string
	Notes        string
}

// NormalizeMedicationInput sanitizes and bounds every field before anything
// reaches the store: HTML stripped, lengths capped, deadline normalized to
// zero-padded "HH:MM". Deadlines that do not even look like a clock time
// fail here with ErrInvalidTimeFormat so classification never sees one.
func NormalizeMedicationInput(input MedicationInput) (MedicationInput, error) {
	input.Name = SanitizeText(input.Name, models.MaxMedicationNameLength)
	input.Dosage = SanitizeText(input.Dosage, models.MaxMedicationDosageLength)
	input.Notes = SanitizeText(input.Notes, models.MaxMedicationNotesLength)

	if input.Name == "" {
		return input, ErrMedicationNameRequired
	}
	if input.Dosage == "" {
		return input, ErrMedicationDosageRequired
	}

	normalized, err := NormalizeDeadlineTime(input.DeadlineTime)
	if err != nil {
		return input, err
	}
	input.DeadlineTime = normalized
	return input, nil
}

// SanitizeText strips HTML tags, script scheme fragments, and inline event
// attributes, then trims and truncates to maxLength runes.
func SanitizeText(value string, maxLength int) string {
	cleaned := htmlTagPattern.ReplaceAllString(value, "")
	cleaned = jsSchemePattern.ReplaceAllString(cleaned, "")
	cleaned = eventAttributePattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if maxLength > 0 {
		if runes := []rune(cleaned); len(runes) > maxLength {
			cleaned = string(runes[:maxLength])
		}
	}
	return cleaned
}

// NormalizeDeadlineTime accepts "H:MM", "HH:MM", or "HH:MM:SS" and returns
// the canonical zero-padded "HH:MM" used for lexical comparison. Components
// outside the clock range are clamped, so "25:00" becomes "23:00" and
// "12:60" becomes "12:59". Only values that do not match the clock shape at
// all are rejected.
func NormalizeDeadlineTime(value string) (string, error) {
	matches := looseTimePattern.FindStringSubmatch(strings.TrimSpace(value))
	if len(matches) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	hour, err := strconv.Atoi(matches[1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	minute, err := strconv.Atoi(matches[2])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	return fmt.Sprintf("%02d:%02d", clampClockComponent(hour, 23), clampClockComponent(minute, 59)), nil
}

func clampClockComponent(value int, max int) int {
	if value < 0 {
		return 0
	}
	if value > max {
		return max
	}
	return value
}
