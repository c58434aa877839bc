package storage

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/models"
)

// ValidateHabit checks the fields every driver requires before writing a habit.
func ValidateHabit(h models.Habit) error {
	if strings.TrimSpace(h.ID) == "" {
		return fmt.Errorf("habit id is required")
	}
	if strings.TrimSpace(h.UserID) == "" {
		return fmt.Errorf("habit %s: user id is required", h.ID)
	}
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit %s: name is required", h.ID)
	}
	if !h.Frequency.Valid() {
		return fmt.Errorf("habit %s: invalid frequency %q", h.ID, h.Frequency)
	}
	return nil
}

// ValidateLog checks the fields every driver requires before writing a log.
func ValidateLog(l models.CompletionLog) error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("log id is required")
	}
	if strings.TrimSpace(l.HabitID) == "" {
		return fmt.Errorf("log %s: habit id is required", l.ID)
	}
	if l.CompletedAt.IsZero() {
		return fmt.Errorf("log %s: completion time is required", l.ID)
	}
	return nil
}
