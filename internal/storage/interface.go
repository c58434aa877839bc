package storage

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	// Migrate applies pending schema migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion reports the applied and the newest known schema version.
	SchemaVersion() (current, latest int, err error)

	// Habits are always scoped to their owner.
	AddHabit(models.Habit) error
	GetHabit(userID, id string) (models.Habit, error)
	GetHabitByName(userID, name string) (models.Habit, error)
	// GetHabits returns the user's habits, newest first.
	GetHabits(userID string) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes a habit together with its completion logs.
	DeleteHabit(userID, id string) error

	// Completion logs
	AddLog(models.CompletionLog) error
	// GetLogs returns a habit's logs ordered by completed_at descending.
	// start and end are optional inclusive bounds.
	GetLogs(habitID string, start, end *time.Time) ([]models.CompletionLog, error)
	DeleteLog(userID, id string) error

	// Utils
	GetConfigPath() string
}
