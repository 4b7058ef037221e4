package blockchain

import "time"

// Clock supplies block timestamps. The chain never reads the wall clock
// directly so callers can plug in a synced or fake clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
