package services

import "time"

// Clock abstracts time so streak arithmetic, snooze expiry and jitter stay
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
