// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"os"
	"strings"
	"sync"
	"time"
)

var (
	locOnce sync.Once
	bizLoc  *time.Location
)

// BusinessLocation is the timezone used for "today" and due-date checks.
// BUSINESS_TIMEZONE falls back to UTC when unset or unknown.
func BusinessLocation() *time.Location {
	locOnce.Do(func() {
		bizLoc = time.UTC
		if tz := strings.TrimSpace(os.Getenv("BUSINESS_TIMEZONE")); tz != "" {
			if loc, err := time.LoadLocation(tz); err == nil {
				bizLoc = loc
			}
		}
	})
	return bizLoc
}

// ToBusinessTime converts a (usually UTC) timestamp to the business timezone.
func ToBusinessTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(BusinessLocation())
}

func ToBusinessTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToBusinessTime(*t)
	return &v
}

// Today is the current calendar day in the business timezone.
func Today() Date {
	return DateOf(time.Now().In(BusinessLocation()))
}
