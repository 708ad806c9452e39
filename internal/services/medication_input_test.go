package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/avelinne/dosetrack/internal/models"
)

func TestNormalizeMedicationInput(t *testing.T) {
	input, err := NormalizeMedicationInput(MedicationInput{
		Name:         "  Aspirin <b>forte</b>  ",
		Dosage:       "100mg",
		DeadlineTime: "8:30",
		Notes:        "take with food",
	})
	if err != nil {
		t.Fatalf("NormalizeMedicationInput() unexpected error: %v", err)
	}
	if input.Name != "Aspirin forte" {
		t.Fatalf("expected sanitized name, got %q", input.Name)
	}
	if input.DeadlineTime != "08:30" {
		t.Fatalf("expected zero-padded deadline, got %q", input.DeadlineTime)
	}

	_, err = NormalizeMedicationInput(MedicationInput{Name: "<script></script>", Dosage: "100mg", DeadlineTime: "08:00"})
	if !errors.Is(err, ErrMedicationNameRequired) {
		t.Fatalf("expected ErrMedicationNameRequired, got %v", err)
	}

	_, err = NormalizeMedicationInput(MedicationInput{Name: "Aspirin", Dosage: "  ", DeadlineTime: "08:00"})
	if !errors.Is(err, ErrMedicationDosageRequired) {
		t.Fatalf("expected ErrMedicationDosageRequired, got %v", err)
	}

	input, err = NormalizeMedicationInput(MedicationInput{Name: "Aspirin", Dosage: "100mg", DeadlineTime: "25:00"})
	if err != nil {
		t.Fatalf("NormalizeMedicationInput() unexpected error: %v", err)
	}
	if input.DeadlineTime != "23:00" {
		t.Fatalf("expected out-of-range hour to clamp to %q, got %q", "23:00", input.DeadlineTime)
	}

	_, err = NormalizeMedicationInput(MedicationInput{Name: "Aspirin", Dosage: "100mg", DeadlineTime: "noon"})
	if !errors.Is(err, ErrInvalidTimeFormat) {
		t.Fatalf("expected ErrInvalidTimeFormat, got %v", err)
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		limit int
		want  string
	}{
		{name: "strips html tags", raw: "<img src=x>hello</img>", limit: 100, want: "hello"},
		{name: "strips javascript scheme", raw: "javascript:alert(1) pill", limit: 100, want: "alert(1) pill"},
		{name: "strips event attributes", raw: "onclick=steal() aspirin", limit: 100, want: "steal() aspirin"},
		{name: "trims whitespace", raw: "   aspirin   ", limit: 100, want: "aspirin"},
		{name: "truncates to limit", raw: strings.Repeat("a", 250), limit: models.MaxMedicationNameLength, want: strings.Repeat("a", 200)},
		{name: "truncates multibyte text on rune boundary", raw: strings.Repeat("é", 10), limit: 4, want: strings.Repeat("é", 4)},
		{name: "zero limit keeps everything", raw: "aspirin", limit: 0, want: "aspirin"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := SanitizeText(testCase.raw, testCase.limit); got != testCase.want {
				t.Fatalf("SanitizeText(%q) = %q, want %q", testCase.raw, got, testCase.want)
			}
		})
	}
}

func TestNormalizeDeadlineTime(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "08:30", want: "08:30"},
		{raw: "8:30", want: "08:30"},
		{raw: "08:30:45", want: "08:30"},
		{raw: " 23:59 ", want: "23:59"},
		{raw: "0:05", want: "00:05"},
		{raw: "24:00", want: "23:00"},
		{raw: "25:30", want: "23:30"},
		{raw: "12:60", want: "12:59"},
		{raw: "99:99", want: "23:59"},
		{raw: "noon", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, testCase := range tests {
		got, err := NormalizeDeadlineTime(testCase.raw)
		if testCase.wantErr {
			if !errors.Is(err, ErrInvalidTimeFormat) {
				t.Fatalf("NormalizeDeadlineTime(%q): expected ErrInvalidTimeFormat, got %v", testCase.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeDeadlineTime(%q) unexpected error: %v", testCase.raw, err)
		}
		if got != testCase.want {
			t.Fatalf("NormalizeDeadlineTime(%q) = %q, want %q", testCase.raw, got, testCase.want)
		}
	}
}
