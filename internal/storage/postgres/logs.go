package postgres

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
		VALUES ($1, $2, $3, $4, $5)`,
		log.ID, log.HabitID, log.UserID, dbTime(log.CompletedAt), log.Notes)
	if err != nil {
		return fmt.Errorf("failed to add log for habit %s: %w", log.HabitID, err)
	}
	return nil
}

func (s *Store) GetLogs(habitID string, start, end *time.Time) ([]models.CompletionLog, error) {
	where := []string{"habit_id = $1"}
	args := []any{habitID}
	if start != nil {
		args = append(args, dbTime(*start))
		where = append(where, fmt.Sprintf("completed_at >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, dbTime(*end))
		where = append(where, fmt.Sprintf("completed_at <= $%d", len(args)))
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
		if err := rows.Scan(&l.ID, &l.HabitID, &l.UserID, &l.CompletedAt, &l.Notes); err != nil {
			return nil, err
		}
		l.CompletedAt = l.CompletedAt.UTC()
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) DeleteLog(userID, id string) error {
	res, err := s.db.Exec(`DELETE FROM habit_logs WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete log %s: %w", id, err)
	}
	return requireAffected(res, "log "+id)
}
