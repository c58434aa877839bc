// Package streak groups completion logs into calendar days and measures
// runs of consecutive completed days.
//
// Every calendar day is a UTC day. A log completed at 23:30 in New York on
// January 1st belongs to January 2nd. Callers that want a different
// convention must shift timestamps before grouping.
package streak

import (
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// GroupByDay buckets logs by the UTC calendar day of their completion time.
// Input order does not matter; every log is kept, in input order, under its day.
func GroupByDay(logs []models.CompletionLog) map[string][]models.CompletionLog {
	groups := make(map[string][]models.CompletionLog)
	for _, log := range logs {
		day := utils.DayKey(log.CompletedAt)
		groups[day] = append(groups[day], log)
	}
	return groups
}

// DateSet is a set of distinct UTC calendar days.
type DateSet struct {
	days map[string]struct{}
}

// NewDateSet builds a set from the calendar days of the given instants.
func NewDateSet(times ...time.Time) DateSet {
	s := DateSet{days: make(map[string]struct{}, len(times))}
	for _, t := range times {
		s.Add(t)
	}
	return s
}

// FromGroups builds a set from the keys of a GroupByDay result.
func FromGroups(groups map[string][]models.CompletionLog) DateSet {
	s := DateSet{days: make(map[string]struct{}, len(groups))}
	for day := range groups {
		s.days[day] = struct{}{}
	}
	return s
}

// DatesOf is shorthand for FromGroups(GroupByDay(logs)).
func DatesOf(logs []models.CompletionLog) DateSet {
	return FromGroups(GroupByDay(logs))
}

// Add inserts the calendar day of t.
func (s *DateSet) Add(t time.Time) {
	if s.days == nil {
		s.days = make(map[string]struct{})
	}
	s.days[utils.DayKey(t)] = struct{}{}
}

// Contains reports whether the calendar day of t is in the set.
func (s DateSet) Contains(t time.Time) bool {
	return s.has(utils.DayKey(t))
}

func (s DateSet) has(day string) bool {
	_, ok := s.days[day]
	return ok
}

// Len returns the number of distinct days.
func (s DateSet) Len() int {
	return len(s.days)
}

// Days returns the day keys in ascending order.
func (s DateSet) Days() []string {
	days := make([]string, 0, len(s.days))
	for day := range s.days {
		days = append(days, day)
	}
	// YYYY-MM-DD sorts chronologically as text
	sort.Strings(days)
	return days
}

// Min returns the earliest day key, or false for an empty set.
func (s DateSet) Min() (string, bool) {
	var earliest string
	for day := range s.days {
		if earliest == "" || day < earliest {
			earliest = day
		}
	}
	return earliest, earliest != ""
}

// CountBetween counts the days in the set that fall within [from, to],
// both ends inclusive and compared as UTC calendar days.
func (s DateSet) CountBetween(from, to time.Time) int {
	lo, hi := utils.DayKey(from), utils.DayKey(to)
	if lo > hi {
		return 0
	}
	n := 0
	for day := range s.days {
		if day >= lo && day <= hi {
			n++
		}
	}
	return n
}
