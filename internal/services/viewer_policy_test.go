package services

import (
	"testing"

	"github.com/avelinne/dosetrack/internal/models"
)

func TestViewerPolicy(t *testing.T) {
	patient := &models.User{ID: 1, Role: models.RolePatient}
	caretaker := &models.User{ID: 2, Role: models.RoleCaretaker}

	if !IsPatientUser(patient) || IsPatientUser(caretaker) || IsPatientUser(nil) {
		t.Fatal("IsPatientUser should match only the patient role")
	}
	if !IsCaretakerUser(caretaker) || IsCaretakerUser(patient) || IsCaretakerUser(nil) {
		t.Fatal("IsCaretakerUser should match only the caretaker role")
	}

	if !CanManageMedications(caretaker) {
		t.Fatal("expected caretaker to manage medications")
	}
	if CanManageMedications(patient) {
		t.Fatal("expected patient to be blocked from managing medications")
	}

	if !CanMarkTaken(patient) {
		t.Fatal("expected patient to mark doses taken")
	}
	if CanMarkTaken(caretaker) {
		t.Fatal("expected caretaker to be blocked from marking doses")
	}
}
