package services

import (
	"testing"
	"time"
)

func TestDayKeyAndTimeOfDay(t *testing.T) {
	instant := time.Date(2026, time.August, 29, 14, 5, 33, 0, time.UTC)
	if got := DayKey(instant); got != "2026-08-29" {
		t.Fatalf("expected day key 2026-08-29, got %q", got)
	}
	if got := TimeOfDay(instant); got != "14:05" {
		t.Fatalf("expected time of day 14:05, got %q", got)
	}
}

func TestDateAtLocation(t *testing.T) {
	eastern := time.FixedZone("UTC-5", -5*3600)
	lateEvening := time.Date(2026, time.March, 2, 2, 30, 0, 0, time.UTC)

	local := DateAtLocation(lateEvening, eastern)
	if got := DayKey(local); got != "2026-03-01" {
		t.Fatalf("expected local date 2026-03-01, got %q", got)
	}
	if local.Hour() != 0 || local.Minute() != 0 {
		t.Fatalf("expected midnight, got %02d:%02d", local.Hour(), local.Minute())
	}
}

func TestDayRange(t *testing.T) {
	instant := time.Date(2026, time.August, 29, 14, 5, 0, 0, time.UTC)
	start, end := DayRange(instant, time.UTC)

	if got := DayKey(start); got != "2026-08-29" {
		t.Fatalf("expected range start 2026-08-29, got %q", got)
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Fatalf("expected 24h range, got %v", got)
	}
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)
	clock := FixedClock{Instant: instant}
	if !clock.Now().Equal(instant) {
		t.Fatalf("expected pinned instant, got %v", clock.Now())
	}
}
