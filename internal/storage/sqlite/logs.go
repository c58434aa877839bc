package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

func (s *Store) AddLog(log models.CompletionLog) error {
	if err := storage.ValidateLog(log); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO habit_logs (id, habit_id, user_id, completed_at, notes)
		VALUES (?, ?, ?, ?, ?)`,
		log.ID, log.HabitID, log.UserID, formatTime(log.CompletedAt), log.Notes)
	if err != nil {
		return fmt.Errorf("failed to add log for habit %s: %w", log.HabitID, err)
	}
	return nil
}

func (s *Store) GetLogs(habitID string, start, end *time.Time) ([]models.CompletionLog, error) {
	where := []string{"habit_id = ?"}
	args := []any{habitID}
	if start != nil {
		where = append(where, "completed_at >= ?")
		args = append(args, formatTime(*start))
	}
	if end != nil {
		where = append(where, "completed_at <= ?")
		args = append(args, formatTime(*end))
	}

	rows, err := s.db.Query(`
		SELECT id, habit_id, user_id, completed_at, notes FROM habit_logs
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY completed_at DESC, id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.CompletionLog{}
	for rows.Next() {
		var l models.CompletionLog
		var completedAt string
		if err := rows.Scan(&l.ID, &l.HabitID, &l.UserID, &completedAt, &l.Notes); err != nil {
			return nil, err
		}
		if l.CompletedAt, err = parseTime("completed_at", completedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) DeleteLog(userID, id string) error {
	res, err := s.db.Exec(`DELETE FROM habit_logs WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete log %s: %w", id, err)
	}
	return requireAffected(res, "log "+id)
}
