package postgres

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
	var frequency string
	if err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &frequency, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return models.Habit{}, err
	}
	h.Frequency = models.Frequency(frequency)
	h.CreatedAt = h.CreatedAt.UTC()
	h.UpdatedAt = h.UpdatedAt.UTC()
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
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		habit.ID, habit.UserID, habit.Name, habit.Description, string(habit.Frequency),
		dbTime(habit.CreatedAt), dbTime(habit.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to add habit %q: %w", habit.Name, err)
	}
	return nil
}

func (s *Store) GetHabit(userID, id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE user_id = $1 AND id = $2`, userID, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabitByName(userID, name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE user_id = $1 AND name = $2`, userID, name)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetHabits(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT `+habitColumns+` FROM habits
		WHERE user_id = $1
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
		UPDATE habits SET name = $1, description = $2, frequency = $3, updated_at = $4
		WHERE user_id = $5 AND id = $6`,
		habit.Name, habit.Description, string(habit.Frequency), dbTime(habit.UpdatedAt),
		habit.UserID, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit %q: %w", habit.Name, err)
	}
	return requireAffected(res, "habit "+habit.ID)
}

func (s *Store) DeleteHabit(userID, id string) error {
	res, err := s.db.Exec(`DELETE FROM habits WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit %s: %w", id, err)
	}
	return requireAffected(res, "habit "+id)
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
