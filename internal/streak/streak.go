package streak

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// CurrentStreak counts the consecutive completed days ending today, or ending
// yesterday when today has not been completed yet. Not having completed today
// does not break the streak; a fully skipped day does.
//
// The backward walk never goes past the earliest day in the set, so it
// terminates after at most Len()+1 steps.
func CurrentStreak(set DateSet, today time.Time) int {
	earliest, ok := set.Min()
	if !ok {
		return 0
	}

	cursor := utils.StartOfDay(today)
	if !set.Contains(cursor) {
		cursor = cursor.AddDate(0, 0, -1)
	}

	count := 0
	for day := utils.DayKey(cursor); day >= earliest && set.has(day); day = utils.DayKey(cursor) {
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

// LongestStreak returns the length of the longest run of consecutive days
// anywhere in the set.
func LongestStreak(set DateSet) int {
	days := set.Days()
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	prev, _ := utils.ParseDay(days[0])
	for _, day := range days[1:] {
		curr, _ := utils.ParseDay(day)
		if utils.DaysBetween(prev, curr) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = curr
	}
	return longest
}

// Compute returns both streaks for the set as seen from today.
func Compute(set DateSet, today time.Time) models.StreakResult {
	return models.StreakResult{
		Current: CurrentStreak(set, today),
		Longest: LongestStreak(set),
	}
}
