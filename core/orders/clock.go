package orders

import "time"

// Clock supplies the current time to the ledgers. All id synthesis and
// timestamping goes through it so tests can pin the clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a Clock backed by the wall clock in UTC.
func SystemClock() Clock { return systemClock{} }
