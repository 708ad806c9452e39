package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/avelinne/dosetrack/internal/models"
)

const missedCheckInterval = 60 * time.Second

// Alert is a simulated "email sent to caretaker" banner raised when a
// scheduled dose is first seen as missed. No real email leaves the process;
// the caretaker view polls and dismisses these.
type Alert struct {
	UserID         uint      `json:"-"`
	MedicationID   uint      `json:"medication_id"`
	MedicationName string    `json:"medication_name"`
	Date           string    `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}

type AlertUserReader interface {
	ListByRole(role string) ([]models.User, error)
}

type AlertMedicationReader interface {
	ListByUser(userID uint) ([]models.Medication, error)
}

type AlertTakenReader interface {
	TodaysTakenIDs(userID uint) (map[uint]struct{}, error)
}

type AlertService struct {
	users       AlertUserReader
	medications AlertMedicationReader
	taken       AlertTakenReader
	clock       Clock
	location    *time.Location

	mu      sync.Mutex
	pending map[uint][]Alert
	sent    map[string]time.Time
}

func NewAlertService(users AlertUserReader, medications AlertMedicationReader, taken AlertTakenReader, clock Clock, location *time.Location) *AlertService {
	if location == nil {
		location = time.UTC
	}
	return &AlertService{
		users:       users,
		medications: medications,
		taken:       taken,
		clock:       clock,
		location:    location,
		pending:     make(map[uint][]Alert),
		sent:        make(map[string]time.Time),
	}
}

// Start re-runs classification on a fixed interval until the context is
// cancelled. Ticks and data mutations are not ordered against each other;
// a dose taken between ticks is picked up on the next one.
func (service *AlertService) Start(ctx context.Context) {
	ticker := time.NewTicker(missedCheckInterval)
	go func() {
		defer ticker.Stop()

		service.run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.run()
			}
		}
	}()
}

func (service *AlertService) run() {
	patients, err := service.users.ListByRole(models.RolePatient)
	if err != nil {
		log.Printf("alerts: fetch patients failed: %v", err)
		return
	}

	for _, patient := range patients {
		if err := service.CheckPatient(patient.ID); err != nil {
			log.Printf("alerts: check patient %d failed: %v", patient.ID, err)
		}
	}
}

// CheckPatient classifies the patient's doses at the current time and
// records one alert per medication per day the first time it turns missed.
func (service *AlertService) CheckPatient(userID uint) error {
	medications, err := service.medications.ListByUser(userID)
	if err != nil {
		return err
	}
	if len(medications) == 0 {
		return nil
	}

	takenIDs, err := service.taken.TodaysTakenIDs(userID)
	if err != nil {
		return err
	}

	now := service.clock.Now().In(service.location)
	today := DateAtLocation(now, service.location)
	classified := ClassifyDoses(medications, takenIDs, TimeOfDay(now))

	for _, dose := range classified {
		if dose.Status != DoseStatusMissed {
			continue
		}

		key := fmt.Sprintf("missed:%d:%d:%s", userID, dose.Medication.ID, DayKey(today))
		if !service.shouldRecord(key, today) {
			continue
		}

		alert := Alert{
			UserID:         userID,
			MedicationID:   dose.Medication.ID,
			MedicationName: dose.Medication.Name,
			Date:           DayKey(today),
			CreatedAt:      now,
		}
		service.appendPending(alert)
		log.Printf("alerts: simulated email to caretaker, patient %d missed %s", userID, dose.Medication.Name)
	}
	return nil
}

func (service *AlertService) PendingAlerts(userID uint) []Alert {
	service.mu.Lock()
	defer service.mu.Unlock()

	alerts := service.pending[userID]
	result := make([]Alert, len(alerts))
	copy(result, alerts)
	return result
}

func (service *AlertService) DismissAlerts(userID uint) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.pending, userID)
}

func (service *AlertService) appendPending(alert Alert) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.pending[alert.UserID] = append(service.pending[alert.UserID], alert)
}

func (service *AlertService) shouldRecord(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if recordedOn, ok := service.sent[key]; ok && recordedOn.Equal(today) {
		return false
	}

	service.sent[key] = today
	if len(service.sent) > 1000 {
		service.sent = map[string]time.Time{key: today}
	}
	return true
}
