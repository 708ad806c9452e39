package api

import (
	"time"

	"github.com/avelinne/dosetrack/internal/db"
	"github.com/avelinne/dosetrack/internal/services"
	"github.com/avelinne/dosetrack/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	authCookieName   = "dosetrack_auth"
	contextUserKey   = "current_user"
	authTokenTTL     = 7 * 24 * time.Hour
	maxProofSize     = 5 << 20
	defaultStatsDays = 30
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	clock        services.Clock
	blobs        storage.BlobStore

	repositories      *db.Repositories
	authService       *services.AuthService
	medicationService *services.MedicationService
	ledgerService     *services.LedgerService
	adherenceService  *services.AdherenceService
	alertService      *services.AlertService
	exportService     *services.ExportService
	loginLimiter      *attemptLimiter
}

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type medicationPayload struct {
	Name         string `json:"name" form:"name"`
	Dosage       string `json:"dosage" form:"dosage"`
	DeadlineTime string `json:"deadline_time" form:"deadline_time"`
	Notes        string `json:"notes" form:"notes"`
}

type notesPayload struct {
	Notes string `json:"notes" form:"notes"`
}

type rolePayload struct {
	Role string `json:"role" form:"role"`
}

type medicationView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	DeadlineTime string `json:"deadline_time"`
	Deadline12h  string `json:"deadline_display"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type classifiedDoseView struct {
	Medication       medicationView `json:"medication"`
	Status           string         `json:"status"`
	RemainingSeconds int64          `json:"remaining_seconds"`
}

type historyEntryView struct {
	ID           uint   `json:"id"`
	MedicationID uint   `json:"medication_id"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	DeadlineTime string `json:"deadline_time"`
	TakenDate    string `json:"taken_date"`
	Status       string `json:"status"`
	PhotoURL     string `json:"photo_url,omitempty"`
	CreatedAt    string `json:"created_at"`
}
