// Package counter contains the pure day-rollover rules for the daily
// generation counter.
package counter

import (
	"time"

	"github.com/example/microdecide/internal/models"
)

// DateKeyLayout is the zero-padded local calendar date layout.
const DateKeyLayout = "2006-01-02"

// DayKey returns the YYYY-MM-DD key of t in t's location.
func DayKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Fresh returns a zero count for today.
func Fresh(today string) models.Counts {
	return models.Counts{DateKey: today, Generated: 0}
}

// Rollover returns counts valid for today: stale or invalid counts are
// replaced with a fresh zero count.
func Rollover(c models.Counts, today string) models.Counts {
	if c.DateKey != today || c.Generated < 0 {
		return Fresh(today)
	}
	return c
}

// Increment returns counts for today with one more generation recorded.
func Increment(c models.Counts, today string) models.Counts {
	c = Rollover(c, today)
	c.Generated++
	return c
}
