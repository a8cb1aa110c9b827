package domain

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// TimePosted renders the age of a posting as "<n>d Ago", "<n>h Ago" or "Just now".
//
// Elapsed time is split into whole days (floored) and the seconds left over
// inside the last day, and the two are checked independently: any non-zero
// day count wins, and the hour bucket only starts strictly after 3600s.
// A createdAt slightly in the future therefore floors to -1 days and reports
// the leftover hours.
func TimePosted(createdAt, now time.Time) string {
	elapsed := now.Sub(createdAt)

	days := elapsed / day
	rem := elapsed % day
	if rem < 0 {
		days--
		rem += day
	}
	seconds := int64(rem / time.Second)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd Ago", days)
	case seconds > 3600:
		return fmt.Sprintf("%dh Ago", seconds/3600)
	default:
		return "Just now"
	}
}
