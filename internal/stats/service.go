package stats

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/schedule"
	"github.com/julianstephens/habitual/internal/utils"
)

// LogFetcher reads completion logs for a habit, newest first. start and end
// are optional inclusive bounds on the completion time.
type LogFetcher interface {
	GetLogs(habitID string, start, end *time.Time) ([]models.CompletionLog, error)
}

// HabitFetcher reads habits owned by a user.
type HabitFetcher interface {
	GetHabit(userID, id string) (models.Habit, error)
	GetHabits(userID string) ([]models.Habit, error)
}

// Store is the read side of storage.Provider that statistics depend on.
type Store interface {
	HabitFetcher
	LogFetcher
}

// Service composes store reads with the pure statistics functions.
// Errors returned by the store are passed through unchanged and never retried.
type Service struct {
	store       Store
	concurrency int
}

// NewService returns a Service that evaluates at most concurrency habits at once.
func NewService(store Store, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrency
	}
	return &Service{store: store, concurrency: concurrency}
}

// HabitStats loads one habit and its full log history and computes its statistics.
func (s *Service) HabitStats(userID, habitID string, windowDays int, now time.Time) (models.HabitReport, error) {
	habit, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		return models.HabitReport{}, err
	}
	return s.report(habit, windowDays, now), nil
}

func (s *Service) report(habit models.Habit, windowDays int, now time.Time) models.HabitReport {
	logs, err := s.store.GetLogs(habit.ID, nil, nil)
	if err != nil {
		return models.HabitReport{Habit: habit, Err: err}
	}
	stats := HabitStats(habit, logs, windowDays, now)
	logger.Debug("Computed habit stats",
		"habit", habit.ID, "logs", len(logs),
		"completed", stats.CompletedDays, "current", stats.StreakCurrent, "longest", stats.StreakLongest)
	return models.HabitReport{Habit: habit, Stats: stats}
}

// AllHabitsStats computes statistics for every habit of the user in parallel.
//
// A failure for one habit does not stop the others: its report carries the
// error, and the returned error joins every per-habit failure. Only a failure
// to list the habits aborts the whole call.
func (s *Service) AllHabitsStats(userID string, windowDays int, now time.Time) ([]models.HabitReport, models.OverallStats, error) {
	habits, err := s.store.GetHabits(userID)
	if err != nil {
		return nil, models.OverallStats{}, err
	}

	reports := make([]models.HabitReport, len(habits))
	s.each(len(habits), func(i int) {
		reports[i] = s.report(habits[i], windowDays, now)
	})

	var errs []error
	for _, r := range reports {
		if r.Err != nil {
			logger.Warn("Failed to compute habit stats", "habit", r.Habit.ID, "error", r.Err)
			errs = append(errs, fmt.Errorf("habit %s: %w", r.Habit.ID, r.Err))
		}
	}

	return reports, AllHabitsStats(reports, windowDays), errors.Join(errs...)
}

// TodayHabits reports, for every habit of the user, whether it was completed
// today or is due today. Habits are evaluated in parallel with the same
// failure isolation as AllHabitsStats; a habit with an unrecognized frequency
// fails with schedule.ErrInvalidFrequency.
func (s *Service) TodayHabits(userID string, now time.Time) ([]models.TodayHabit, error) {
	habits, err := s.store.GetHabits(userID)
	if err != nil {
		return nil, err
	}

	results := make([]models.TodayHabit, len(habits))
	s.each(len(habits), func(i int) {
		results[i] = s.today(habits[i], now)
	})

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			logger.Warn("Failed to evaluate habit for today", "habit", r.Habit.ID, "error", r.Err)
			errs = append(errs, fmt.Errorf("habit %s: %w", r.Habit.ID, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

// TodayHabit evaluates a single habit the way TodayHabits does.
func (s *Service) TodayHabit(habit models.Habit, now time.Time) (models.TodayHabit, error) {
	t := s.today(habit, now)
	return t, t.Err
}

func (s *Service) today(habit models.Habit, now time.Time) models.TodayHabit {
	result := models.TodayHabit{Habit: habit}

	// Logs after today cannot affect today's decision.
	end := utils.EndOfDay(now)
	logs, err := s.store.GetLogs(habit.ID, nil, &end)
	if err != nil {
		result.Err = err
		return result
	}

	status, err := schedule.Evaluate(habit.Frequency, schedule.Latest(logs), now)
	if err != nil {
		result.Err = err
		return result
	}
	result.DueToday = status.Due
	result.CompletedToday = status.CompletedToday
	return result
}

// each runs fn for every index in [0, n) with bounded parallelism and waits
// for all of them. fn must only write to its own index.
func (s *Service) each(n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
