// Package stats derives per-habit adherence statistics from completion logs
// and rolls them up across a user's habits.
package stats

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/streak"
	"github.com/julianstephens/habitual/internal/utils"
)

// HabitStats computes statistics for one habit over the trailing window of
// windowDays calendar days ending today (inclusive). Streaks use the whole
// history in logs and are not clipped to the window.
//
// Logs that belong to a different habit are ignored. A window of zero or
// fewer days yields zero totals and a zero rate.
func HabitStats(habit models.Habit, logs []models.CompletionLog, windowDays int, today time.Time) models.HabitStats {
	own := logs
	if habit.ID != "" {
		own = make([]models.CompletionLog, 0, len(logs))
		for _, log := range logs {
			if log.HabitID == "" || log.HabitID == habit.ID {
				own = append(own, log)
			}
		}
	}

	dates := streak.DatesOf(own)
	result := streak.Compute(dates, today)

	stats := models.HabitStats{
		StreakCurrent: result.Current,
		StreakLongest: result.Longest,
	}
	if windowDays <= 0 {
		return stats
	}

	from := utils.StartOfDay(today).AddDate(0, 0, -(windowDays - 1))
	stats.TotalDays = windowDays
	stats.CompletedDays = dates.CountBetween(from, today)
	stats.CompletionRate = float64(stats.CompletedDays) / float64(windowDays) * 100
	return stats
}

// AllHabitsStats rolls up completed days across reports. Reports that carry
// an error are counted in TotalHabits but excluded from the rate.
func AllHabitsStats(reports []models.HabitReport, windowDays int) models.OverallStats {
	overall := models.OverallStats{TotalHabits: len(reports)}

	completed, counted := 0, 0
	for _, r := range reports {
		if r.Err != nil {
			continue
		}
		completed += r.Stats.CompletedDays
		counted++
	}

	possible := counted * windowDays
	if possible > 0 {
		overall.OverallCompletionRate = float64(completed) / float64(possible) * 100
	}
	return overall
}
