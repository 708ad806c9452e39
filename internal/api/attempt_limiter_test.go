package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterSlidingWindow(t *testing.T) {
	limiter := newAttemptLimiter()
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	if limiter.tooManyRecent("1.2.3.4", now, 3, window) {
		t.Fatal("expected fresh key to be under the limit")
	}

	for i := 0; i < 3; i++ {
		limiter.addFailure("1.2.3.4", now.Add(time.Duration(i)*time.Minute), window)
	}
	if !limiter.tooManyRecent("1.2.3.4", now.Add(3*time.Minute), 3, window) {
		t.Fatal("expected key to hit the limit after 3 failures")
	}
	if limiter.tooManyRecent("5.6.7.8", now, 3, window) {
		t.Fatal("expected other keys to stay unaffected")
	}

	later := now.Add(20 * time.Minute)
	if limiter.tooManyRecent("1.2.3.4", later, 3, window) {
		t.Fatal("expected failures to age out of the window")
	}
}

func TestAttemptLimiterReset(t *testing.T) {
	limiter := newAttemptLimiter()
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	for i := 0; i < 3; i++ {
		limiter.addFailure("1.2.3.4", now, window)
	}
	limiter.reset("1.2.3.4")
	if limiter.tooManyRecent("1.2.3.4", now, 3, window) {
		t.Fatal("expected reset to clear recorded failures")
	}
}
