package countdown

import (
	"fmt"
	"time"
)

// StartingSoon is shown once the start time has been reached.
const StartingSoon = "Game is starting soon!"

// Format renders the time left until start as "{H}h {M}m". Hours and minutes are
// truncated from whole remaining seconds; the result never goes negative and is
// StartingSoon whenever start is not after now.
func Format(now, start time.Time) string {
	if !start.After(now) {
		return StartingSoon
	}
	secs := int64(start.Sub(now) / time.Second)
	return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
}
