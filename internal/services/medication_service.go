package services

import (
	"errors"

	"github.com/avelinne/dosetrack/internal/models"
)

var (
	ErrMedicationLoadFailed   = errors.New("load medications failed")
	ErrMedicationSaveFailed   = errors.New("save medication failed")
	ErrMedicationDeleteFailed = errors.New("delete medication failed")
	ErrMedicationNotFound     = errors.New("medication not found")
)

type MedicationRepository interface {
	ListByUser(userID uint) ([]models.Medication, error)
	CountByUser(userID uint) (int64, error)
	FindByIDForUser(medicationID uint, userID uint) (models.Medication, bool, error)
	Create(medication *models.Medication) error
	Save(medication *models.Medication) error
	UpdateNotes(medicationID uint, userID uint, notes string) error
	Delete(medicationID uint, userID uint) error
}

type MedicationService struct {
	medications MedicationRepository
}

func NewMedicationService(medications MedicationRepository) *MedicationService {
	return &MedicationService{medications: medications}
}

func (service *MedicationService) ListForUser(userID uint) ([]models.Medication, error) {
	medications, err := service.medications.ListByUser(userID)
	if err != nil {
		return nil, ErrMedicationLoadFailed
	}
	return medications, nil
}

func (service *MedicationService) FetchForUser(medicationID uint, userID uint) (models.Medication, error) {
	medication, found, err := service.medications.FindByIDForUser(medicationID, userID)
	if err != nil {
		return models.Medication{}, ErrMedicationLoadFailed
	}
	if !found {
		return models.Medication{}, ErrMedicationNotFound
	}
	return medication, nil
}

func (service *MedicationService) CreateForUser(userID uint, input MedicationInput) (models.Medication, error) {
	normalized, err := NormalizeMedicationInput(input)
	if err != nil {
		return models.Medication{}, err
	}

	medication := models.Medication{
		UserID:       userID,
		Name:         normalized.Name,
		Dosage:       normalized.Dosage,
		DeadlineTime: normalized.DeadlineTime,
		Notes:        normalized.Notes,
	}
	if err := service.medications.Create(&medication); err != nil {
		return models.Medication{}, ErrMedicationSaveFailed
	}
	return medication, nil
}

func (service *MedicationService) UpdateForUser(medicationID uint, userID uint, input MedicationInput) (models.Medication, error) {
	normalized, err := NormalizeMedicationInput(input)
	if err != nil {
		return models.Medication{}, err
	}

	medication, found, err := service.medications.FindByIDForUser(medicationID, userID)
	if err != nil {
		return models.Medication{}, ErrMedicationLoadFailed
	}
	if !found {
		return models.Medication{}, ErrMedicationNotFound
	}

	medication.Name = normalized.Name
	medication.Dosage = normalized.Dosage
	medication.DeadlineTime = normalized.DeadlineTime
	medication.Notes = normalized.Notes
	if err := service.medications.Save(&medication); err != nil {
		return models.Medication{}, ErrMedicationSaveFailed
	}
	return medication, nil
}

// UpdateNotesForUser backs the caretaker's inline notes edit; the rest of
// the medication is left untouched.
func (service *MedicationService) UpdateNotesForUser(medicationID uint, userID uint, notes string) error {
	sanitized := SanitizeText(notes, models.MaxMedicationNotesLength)

	_, found, err := service.medications.FindByIDForUser(medicationID, userID)
	if err != nil {
		return ErrMedicationLoadFailed
	}
	if !found {
		return ErrMedicationNotFound
	}

	if err := service.medications.UpdateNotes(medicationID, userID, sanitized); err != nil {
		return ErrMedicationSaveFailed
	}
	return nil
}

func (service *MedicationService) DeleteForUser(medicationID uint, userID uint) error {
	_, found, err := service.medications.FindByIDForUser(medicationID, userID)
	if err != nil {
		return ErrMedicationLoadFailed
	}
	if !found {
		return ErrMedicationNotFound
	}

	if err := service.medications.Delete(medicationID, userID); err != nil {
		return ErrMedicationDeleteFailed
	}
	return nil
}
