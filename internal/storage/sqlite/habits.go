package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

const habitColumns = "id, user_id, name, description, frequency, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var frequency, createdAt, updatedAt string

	if err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &frequency, &createdAt, &updatedAt); err != nil {
		return models.Habit{}, err
	}
	h.Frequency = models.Frequency(frequency)

	var err error
	if h.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.Habit{}, err
	}
	if h.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	if err := storage.ValidateHabit(habit); err != nil {
		return err
	}
	if habit.UpdatedAt.IsZero() {
		habit.UpdatedAt = habit.CreatedAt
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, habit.Description, string(habit.Frequency),
		formatTime(habit.CreatedAt), formatTime(habit.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add habit %q: %w", habit.Name, err)
	}
	return nil
}

func (s *Store) GetHabit(userID, id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE user_id = ? AND id = ?`, userID, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabitByName(userID, name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE user_id = ? AND name = ?`, userID, name)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabits(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT `+habitColumns+` FROM habits
		WHERE user_id = ?
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	if err := storage.ValidateHabit(habit); err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE habits SET name = ?, description = ?, frequency = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		habit.Name, habit.Description, string(habit.Frequency), formatTime(habit.UpdatedAt),
		habit.UserID, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit %q: %w", habit.Name, err)
	}
	return requireAffected(res, "habit "+habit.ID)
}

func (s *Store) DeleteHabit(userID, id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM habits WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit %s: %w", id, err)
	}
	if err := requireAffected(res, "habit "+id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM habit_logs WHERE habit_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete logs of habit %s: %w", id, err)
	}
	return tx.Commit()
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return nil
}
