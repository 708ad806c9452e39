package models

import "time"

const (
	MaxMedicationNameLength   = 200
	MaxMedicationDosageLength = 100
	MaxMedicationNotesLength  = 1000
)

// Medication is a once-per-day scheduled dose with a local wall-clock
// deadline stored as "HH:MM". The deadline is validated at ingestion and
// compared lexically everywhere else.
type Medication struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"not null;index"`
	Name         string `gorm:"not null"`
	Dosage       string `gorm:"not null"`
	DeadlineTime string `gorm:"not null"`
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
