package db

import (
	"github.com/avelinne/dosetrack/internal/models"
	"gorm.io/gorm"
)

type MedicationRepository struct {
	database *gorm.DB
}

func NewMedicationRepository(database *gorm.DB) *MedicationRepository {
	return &MedicationRepository{database: database}
}

// ListByUser returns the owner's medications newest first, matching the
// dashboard ordering of the original data store queries.
func (repo *MedicationRepository) ListByUser(userID uint) ([]models.Medication, error) {
	medications := make([]models.Medication, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}

func (repo *MedicationRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Medication{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *MedicationRepository) FindByIDForUser(medicationID uint, userID uint) (models.Medication, bool, error) {
	var medication models.Medication
	result := repo.database.
		Where("id = ? AND user_id = ?", medicationID, userID).
		Limit(1).
		Find(&medication)
	if result.Error != nil {
		return models.Medication{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Medication{}, false, nil
	}
	return medication, true, nil
}

func (repo *MedicationRepository) Create(medication *models.Medication) error {
	return repo.database.Create(medication).Error
}

func (repo *MedicationRepository) Save(medication *models.Medication) error {
	return repo.database.Save(medication).Error
}

func (repo *MedicationRepository) UpdateNotes(medicationID uint, userID uint, notes string) error {
	return repo.database.Model(&models.Medication{}).
		Where("id = ? AND user_id = ?", medicationID, userID).
		Update("notes", notes).Error
}

// Delete removes the medication row only. Its dose logs are intentionally
// left in place; history keeps listing them without medication metadata.
func (repo *MedicationRepository) Delete(medicationID uint, userID uint) error {
	return repo.database.
		Where("id = ? AND user_id = ?", medicationID, userID).
		Delete(&models.Medication{}).Error
}
