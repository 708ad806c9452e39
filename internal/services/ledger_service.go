package services

import (
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/avelinne/dosetrack/internal/models"
	"github.com/avelinne/dosetrack/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrDoseLogLoadFailed = errors.New("load dose logs failed")
	ErrDoseLogSaveFailed = errors.New("save dose log failed")
	ErrProofUploadFailed = errors.New("upload proof photo failed")
)

type DoseLogRepository interface {
	ListForDay(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.DoseLog, error)
	ExistsForDay(medicationID uint, userID uint, dayStart time.Time, dayEnd time.Time) (bool, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DoseLog, error)
	Create(entry *models.DoseLog) error
}

type LedgerMedicationReader interface {
	ListByUser(userID uint) ([]models.Medication, error)
}

// ProofUpload carries an optional photo attached to a mark-taken action.
type ProofUpload struct {
	FileName string
	Data     []byte
}

// HistoryEntry is a dose log joined with its medication's display metadata.
// Medication fields stay empty when the medication was deleted after the
// dose was logged.
type HistoryEntry struct {
	Log              models.DoseLog
	MedicationName   string
	MedicationDosage string
	DeadlineTime     string
}

type LedgerService struct {
	logs        DoseLogRepository
	medications LedgerMedicationReader
	blobs       storage.BlobStore
	clock       Clock
	location    *time.Location
	isDuplicate func(error) bool
}

func NewLedgerService(
	logs DoseLogRepository,
	medications LedgerMedicationReader,
	blobs storage.BlobStore,
	clock Clock,
	location *time.Location,
	isDuplicate func(error) bool,
) *LedgerService {
	if location == nil {
		location = time.UTC
	}
	if isDuplicate == nil {
		isDuplicate = func(error) bool { return false }
	}
	return &LedgerService{
		logs:        logs,
		medications: medications,
		blobs:       blobs,
		clock:       clock,
		location:    location,
		isDuplicate: isDuplicate,
	}
}

// MarkTaken records today's dose for a medication at most once. A second
// call on the same calendar day is a silent no-op, and a unique-constraint
// violation on insert (two confirmations racing past the existence check)
// is treated the same way. The proof upload happens before the insert and
// the two are not atomic: an insert failure after a successful upload
// leaves the uploaded photo orphaned in the blob store.
func (service *LedgerService) MarkTaken(userID uint, medicationID uint, proof *ProofUpload) error {
	dayStart, dayEnd := DayRange(service.clock.Now(), service.location)

	exists, err := service.logs.ExistsForDay(medicationID, userID, dayStart, dayEnd)
	if err != nil {
		return ErrDoseLogLoadFailed
	}
	if exists {
		return nil
	}

	photoURL := ""
	if proof != nil && len(proof.Data) > 0 {
		uploaded, err := service.uploadProof(userID, medicationID, proof)
		if err != nil {
			return ErrProofUploadFailed
		}
		photoURL = uploaded
	}

	entry := models.DoseLog{
		MedicationID: medicationID,
		UserID:       userID,
		TakenDate:    dayStart,
		Status:       models.DoseStatusTaken,
		PhotoURL:     photoURL,
	}
	if err := service.logs.Create(&entry); err != nil {
		if service.isDuplicate(err) {
			return nil
		}
		return ErrDoseLogSaveFailed
	}
	return nil
}

func (service *LedgerService) uploadProof(userID uint, medicationID uint, proof *ProofUpload) (string, error) {
	extension := path.Ext(proof.FileName)
	objectPath := fmt.Sprintf("%d/%d-%s%s", userID, medicationID, uuid.NewString(), extension)
	return service.blobs.Upload(objectPath, proof.Data)
}

// TodaysTakenIDs returns the medication ids already logged for today.
func (service *LedgerService) TodaysTakenIDs(userID uint) (map[uint]struct{}, error) {
	dayStart, dayEnd := DayRange(service.clock.Now(), service.location)

	logs, err := service.logs.ListForDay(userID, dayStart, dayEnd)
	if err != nil {
		return nil, ErrDoseLogLoadFailed
	}

	taken := make(map[uint]struct{}, len(logs))
	for _, entry := range logs {
		taken[entry.MedicationID] = struct{}{}
	}
	return taken, nil
}

// HistoricalEntries returns the owner's dose logs newest first, joined with
// medication metadata for display. Nil bounds leave that side open.
func (service *LedgerService) HistoricalEntries(userID uint, from *time.Time, to *time.Time) ([]HistoryEntry, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from, service.location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, service.location)
		toEnd = &end
	}

	logs, err := service.logs.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, ErrDoseLogLoadFailed
	}

	medications, err := service.medications.ListByUser(userID)
	if err != nil {
		return nil, ErrDoseLogLoadFailed
	}
	byID := make(map[uint]models.Medication, len(medications))
	for _, medication := range medications {
		byID[medication.ID] = medication
	}

	entries := make([]HistoryEntry, 0, len(logs))
	for _, entry := range logs {
		joined := HistoryEntry{Log: entry}
		if medication, ok := byID[entry.MedicationID]; ok {
			joined.MedicationName = medication.Name
			joined.MedicationDosage = medication.Dosage
			joined.DeadlineTime = medication.DeadlineTime
		}
		entries = append(entries, joined)
	}
	return entries, nil
}
