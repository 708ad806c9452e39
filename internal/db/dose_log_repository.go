package db

import (
	"strings"
	"time"

	"github.com/avelinne/dosetrack/internal/models"
	"gorm.io/gorm"
)

type DoseLogRepository struct {
	database *gorm.DB
}

func NewDoseLogRepository(database *gorm.DB) *DoseLogRepository {
	return &DoseLogRepository{database: database}
}

func (repo *DoseLogRepository) ListForDay(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.DoseLog, error) {
	logs := make([]models.DoseLog, 0)
	if err := repo.database.
		Where("user_id = ? AND taken_date >= ? AND taken_date < ?", userID, dayStart, dayEnd).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DoseLogRepository) ExistsForDay(medicationID uint, userID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.DoseLog{}).
		Where("medication_id = ? AND user_id = ? AND taken_date >= ? AND taken_date < ?",
			medicationID, userID, dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// ListByUserRange returns the owner's dose logs newest first. Either bound
// may be nil, leaving that side of the range open.
func (repo *DoseLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DoseLog, error) {
	query := repo.database.Model(&models.DoseLog{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("taken_date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("taken_date < ?", *toEnd)
	}

	logs := make([]models.DoseLog, 0)
	if err := query.Order("taken_date DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DoseLogRepository) Create(entry *models.DoseLog) error {
	return repo.database.Create(entry).Error
}

// IsUniqueViolation reports whether an insert failed on the
// (medication_id, user_id, taken_date) unique index. The ledger treats
// that as the authoritative already-taken signal under concurrent callers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
