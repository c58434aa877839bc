package models

// StreakResult holds the current and longest runs of consecutive completed days
type StreakResult struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// HabitStats summarizes a habit over a trailing reporting window.
// Streaks are computed over the full history, not just the window.
type HabitStats struct {
	TotalDays      int     `json:"total_days"`
	CompletedDays  int     `json:"completed_days"`
	CompletionRate float64 `json:"completion_rate"` // percentage, 0-100
	StreakCurrent  int     `json:"streak_current"`
	StreakLongest  int     `json:"streak_longest"`
}

// HabitReport pairs a habit with its statistics. Err is set when the
// habit's logs could not be fetched; Stats is then the zero value.
type HabitReport struct {
	Habit Habit      `json:"habit"`
	Stats HabitStats `json:"stats"`
	Err   error      `json:"-"`
}

// OverallStats rolls up completion across a collection of habits
type OverallStats struct {
	TotalHabits           int     `json:"total_habits"`
	OverallCompletionRate float64 `json:"overall_completion_rate"`
}

// TodayHabit is a habit annotated with its status for the current day.
// DueToday and CompletedToday are never both true.
type TodayHabit struct {
	Habit          Habit `json:"habit"`
	DueToday       bool  `json:"due_today"`
	CompletedToday bool  `json:"completed_today"`
	Err            error `json:"-"`
}
