// Package schedule decides whether a habit is due on a given day.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ErrInvalidFrequency is returned for a frequency outside daily/weekly/monthly.
// Unknown values are rejected rather than treated as "not due", which would
// hide the habit from the user indefinitely.
var ErrInvalidFrequency = errors.New("invalid habit frequency")

// Status is a habit's state for a single calendar day.
// Due and CompletedToday are mutually exclusive.
type Status struct {
	Due            bool
	CompletedToday bool
}

// IsDueToday applies the frequency policy to the most recent completion.
// latest is nil when the habit has never been completed.
//
// Intervals are whole UTC calendar days between latest and today. The monthly
// policy uses a fixed 30-day interval and ignores calendar month lengths.
func IsDueToday(freq models.Frequency, latest *time.Time, today time.Time) (bool, error) {
	var interval int
	switch freq {
	case models.FrequencyDaily:
		return true, nil
	case models.FrequencyWeekly:
		interval = constants.WeeklyIntervalDays
	case models.FrequencyMonthly:
		interval = constants.MonthlyIntervalDays
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidFrequency, freq)
	}

	if latest == nil {
		return true, nil
	}
	return utils.DaysBetween(*latest, today) >= interval, nil
}

// Evaluate reports the habit's status for today. A completion on today's
// calendar day marks the habit completed and never due, whatever its
// frequency. The frequency is validated first, so a misconfigured habit is
// reported even when it was completed today.
func Evaluate(freq models.Frequency, latest *time.Time, today time.Time) (Status, error) {
	due, err := IsDueToday(freq, latest, today)
	if err != nil {
		return Status{}, err
	}
	if latest != nil && utils.DayKey(*latest) == utils.DayKey(today) {
		return Status{CompletedToday: true}, nil
	}
	return Status{Due: due}, nil
}

// Latest returns the most recent completion time among logs, or nil when
// there are none. Logs may be in any order.
func Latest(logs []models.CompletionLog) *time.Time {
	var latest *time.Time
	for i := range logs {
		if latest == nil || logs[i].CompletedAt.After(*latest) {
			t := logs[i].CompletedAt
			latest = &t
		}
	}
	return latest
}
