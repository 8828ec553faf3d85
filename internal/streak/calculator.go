// Package streak derives progress statistics from a user's progress log.
//
// The calculator is pure: it reads nothing but its arguments and never fails.
// Calendar days are computed in a single configured location, so the same
// log always yields the same streaks regardless of the host time zone.
package streak

import (
	"sort"
	"time"

	"github.com/limbo/sovet/pkg/entity"
)

const (
	// WeekWindow is the trailing window counted by weekly progress.
	WeekWindow = 7 * 24 * time.Hour
	// MaxWeeklyProgress caps weekly progress at one completion per day.
	MaxWeeklyProgress = 7
)

type Calculator struct {
	loc *time.Location
}

// New returns a calculator that draws day boundaries in loc. A nil loc means UTC.
func New(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{loc: loc}
}

// Compute returns the statistics of records as seen at now.
func (c *Calculator) Compute(records []*entity.ProgressLog, now time.Time) entity.ProgressStats {
	var stats entity.ProgressStats
	if len(records) == 0 {
		return stats
	}

	completed := make([]*entity.ProgressLog, 0, len(records))
	for _, rec := range records {
		if rec != nil && rec.ActionCompleted {
			completed = append(completed, rec)
		}
	}
	stats.TotalTipsCompleted = len(completed)
	if len(completed) == 0 {
		return stats
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].LoggedAt.After(completed[j].LoggedAt)
	})

	today := c.day(now)
	var (
		temp       int
		prev       int
		anchorOpen bool
	)
	for i, rec := range completed {
		day := c.day(rec.LoggedAt)
		if day > today {
			day = today
		}
		if i == 0 {
			temp = 1
			// Current is the run containing the latest completion, however old.
			anchorOpen = true
		} else {
			switch gap := prev - day; {
			case gap == 0:
				continue
			case gap == 1:
				temp++
			default:
				temp = 1
				anchorOpen = false
			}
		}
		prev = day
		if anchorOpen {
			stats.CurrentStreak = temp
		}
		if temp > stats.LongestStreak {
			stats.LongestStreak = temp
		}
	}

	weekStart := now.Add(-WeekWindow)
	weekly := 0
	for _, rec := range completed {
		if !rec.LoggedAt.Before(weekStart) {
			weekly++
		}
	}
	stats.WeeklyProgress = min(weekly, MaxWeeklyProgress)

	return stats
}

// day numbers calendar days in the calculator's location so that consecutive
// dates differ by exactly one, DST transitions included.
func (c *Calculator) day(t time.Time) int {
	y, m, d := t.In(c.loc).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
