package services

import "time"

const (
	dateKeyLayout   = "2006-01-02"
	timeOfDayLayout = "15:04"
)

// Clock supplies "now" so classification and aggregation stay deterministic
// under test. All date keys and deadline comparisons are local wall clock;
// no timezone arithmetic happens anywhere downstream.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

func (clock SystemClock) Now() time.Time {
	if clock.Location == nil {
		return time.Now()
	}
	return time.Now().In(clock.Location)
}

// FixedClock pins "now" for tests.
type FixedClock struct {
	Instant time.Time
}

func (clock FixedClock) Now() time.Time {
	return clock.Instant
}

func TimeOfDay(value time.Time) string {
	return value.Format(timeOfDayLayout)
}

func DayKey(value time.Time) string {
	return value.Format(dateKeyLayout)
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}
