package services

import "github.com/avelinne/dosetrack/internal/models"

func IsPatientUser(user *models.User) bool {
	return user != nil && user.Role == models.RolePatient
}

func IsCaretakerUser(user *models.User) bool {
	return user != nil && user.Role == models.RoleCaretaker
}

// CanManageMedications gates medication create/edit/delete and notes edits;
// only caretakers manage the schedule.
func CanManageMedications(user *models.User) bool {
	return IsCaretakerUser(user)
}

// CanMarkTaken gates dose confirmation; only the patient records doses.
func CanMarkTaken(user *models.User) bool {
	return IsPatientUser(user)
}
