package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/julianstephens/habitual/internal/models"
)

// Store is a mock for stats.Store.
type Store struct {
	mock.Mock
}

func (m *Store) GetHabit(userID, id string) (models.Habit, error) {
	args := m.Called(userID, id)
	if habit, ok := args.Get(0).(models.Habit); ok {
		return habit, args.Error(1)
	}
	return models.Habit{}, args.Error(1)
}

func (m *Store) GetHabits(userID string) ([]models.Habit, error) {
	args := m.Called(userID)
	if habits, ok := args.Get(0).([]models.Habit); ok {
		return habits, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) GetLogs(habitID string, start, end *time.Time) ([]models.CompletionLog, error) {
	args := m.Called(habitID, start, end)
	if logs, ok := args.Get(0).([]models.CompletionLog); ok {
		return logs, args.Error(1)
	}
	return nil, args.Error(1)
}
