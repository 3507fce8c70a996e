// Package stats derives display-ready habit metrics from raw completion
// logs. Everything here is a pure function of its inputs plus a caller
// supplied reference time; nothing reads or writes storage.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/sadopc/habitual/internal/store"
)

// HabitWithStats is the projection consumed by every screen: a habit
// joined with its derived metrics. It is recomputed on demand and never
// persisted.
type HabitWithStats struct {
	store.Habit
	TodayCompleted   bool    `json:"todayCompleted"`
	CurrentStreak    int     `json:"currentStreak"`
	TotalCompletions int     `json:"totalCompletions"`
	CompletionRate   float64 `json:"completionRate"` // percent, 0-100
}

// Compute joins each habit against its logs and now's calendar day.
func Compute(habits []store.Habit, logs []store.HabitLog, now time.Time) []HabitWithStats {
	byHabit := make(map[string][]store.HabitLog)
	for _, l := range logs {
		byHabit[l.HabitID] = append(byHabit[l.HabitID], l)
	}
	today := now.Format(store.DateFormat)

	out := make([]HabitWithStats, 0, len(habits))
	for _, h := range habits {
		habitLogs := byHabit[h.ID]

		var todayCompleted bool
		var completions int
		for _, l := range habitLogs {
			if l.Completed {
				completions++
				if l.Date == today {
					todayCompleted = true
				}
			}
		}

		rate := 0.0
		if len(habitLogs) > 0 {
			rate = float64(completions) / float64(len(habitLogs)) * 100
		}

		out = append(out, HabitWithStats{
			Habit:            h,
			TodayCompleted:   todayCompleted,
			CurrentStreak:    Streak(habitLogs, now),
			TotalCompletions: completions,
			CompletionRate:   rate,
		})
	}
	return out
}

// Streak returns the current consecutive-day streak for one habit's logs.
//
// The gap test measures elapsed duration, ceiled to whole days, between a
// cursor (starting at now) and each completed log's date at midnight UTC.
// That is deliberately not a calendar-day difference: a completion just
// under or just over 24h from the cursor can land on either side of the
// threshold depending on time of day. Changing this would silently alter
// user-visible streak counts, so it is kept as is.
func Streak(logs []store.HabitLog, now time.Time) int {
	completed := make([]store.HabitLog, 0, len(logs))
	for _, l := range logs {
		if l.Completed {
			completed = append(completed, l)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].Date > completed[j].Date // most recent first
	})

	streak := 0
	cursor := now
	for _, l := range completed {
		d, err := time.Parse(store.DateFormat, l.Date)
		if err != nil {
			// Unparseable dates count as very far away: the streak ends.
			break
		}
		diff := cursor.Sub(d)
		if diff < 0 {
			diff = -diff
		}
		days := int(math.Ceil(diff.Hours() / 24))
		if days > 1 {
			break
		}
		streak++
		cursor = d
	}
	return streak
}

// DayCount is one calendar day's completed-log total, for charting.
type DayCount struct {
	Date      string // YYYY-MM-DD
	Label     string // e.g. "Mon 02"
	Completed int
}

// CompletionsByDay buckets completed logs per calendar day for the last
// days days, ending today. Days with no completions are present with a
// zero count so charts keep a stable x-axis.
func CompletionsByDay(logs []store.HabitLog, now time.Time, days int) []DayCount {
	counts := make(map[string]int)
	for _, l := range logs {
		if l.Completed {
			counts[l.Date]++
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		date := d.Format(store.DateFormat)
		out = append(out, DayCount{
			Date:      date,
			Label:     d.Format("Mon 02"),
			Completed: counts[date],
		})
	}
	return out
}

// TodayProgress reports how many active habits have a completed log for
// now's calendar day, out of all active habits.
func TodayProgress(habits []store.Habit, logs []store.HabitLog, now time.Time) (done, total int) {
	today := now.Format(store.DateFormat)
	completedToday := make(map[string]bool)
	for _, l := range logs {
		if l.Completed && l.Date == today {
			completedToday[l.HabitID] = true
		}
	}
	for _, h := range habits {
		if !h.IsActive {
			continue
		}
		total++
		if completedToday[h.ID] {
			done++
		}
	}
	return done, total
}
