package models

import "time"

const DoseStatusTaken = "taken"

// DoseLog records that a medication was taken by its owner on a calendar
// day. At most one row may exist per (medication, user, taken_date); the
// unique index backs the ledger's idempotent mark-taken.
type DoseLog struct {
	ID           uint      `gorm:"primaryKey"`
	MedicationID uint      `gorm:"not null;uniqueIndex:uidx_med_user_date"`
	UserID       uint      `gorm:"not null;uniqueIndex:uidx_med_user_date"`
	TakenDate    time.Time `gorm:"type:date;not null;uniqueIndex:uidx_med_user_date"`
	Status       string    `gorm:"not null;default:taken"`
	PhotoURL     string
	CreatedAt    time.Time
}

func (DoseLog) TableName() string {
	return "medication_logs"
}
