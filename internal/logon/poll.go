package logon

import "time"

// pollUntil repeatedly evaluates predicate at the given interval until it
// reports true or the deadline elapses. The SAP GUI scripting engine offers
// only synchronous point-in-time queries with no readiness notifications,
// so every wait in this package is this bounded poll.
func pollUntil(interval, deadline time.Duration, predicate func() bool) bool {
	end := time.Now().Add(deadline)
	for {
		if predicate() {
			return true
		}
		if time.Now().After(end) {
			return false
		}
		time.Sleep(interval)
	}
}
