package models

import "time"

const (
	RolePatient   = "patient"
	RoleCaretaker = "caretaker"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:patient"`
	CreatedAt    time.Time `gorm:"not null"`
}
