package logs

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type TrackCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Note  string `help:"Optional note for this completion." short:"n"`
	At    string `help:"When it was completed (RFC3339 or YYYY-MM-DD, default: now)."`
}

func (c *TrackCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	now := ctx.Today()
	completedAt := now
	if c.At != "" {
		completedAt, err = utils.ParseTimestamp(c.At)
		if err != nil {
			return err
		}
		if utils.DaysBetween(now, completedAt) > 0 {
			return fmt.Errorf("cannot track a completion on a future day (%s)", completedAt.Format(constants.DateFormat))
		}
	}

	entry := models.CompletionLog{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		UserID:      ctx.UserID(),
		CompletedAt: completedAt,
		Notes:       c.Note,
	}
	if err := ctx.Store.AddLog(entry); err != nil {
		return err
	}

	logger.Debug("Tracked habit", "habit", habit.ID, "log", entry.ID, "at", completedAt)
	ctx.Printf("Tracked %s on %s\n", habit.Name, completedAt.Format(constants.DateFormat))
	return nil
}

type LogCmd struct {
	List   LogListCmd   `cmd:"" help:"List completions of a habit, newest first."`
	Delete LogDeleteCmd `cmd:"" help:"Delete a completion by ID."`
}

type LogListCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	From  string `help:"Only completions at or after this time (RFC3339 or YYYY-MM-DD)."`
	To    string `help:"Only completions at or before this time (RFC3339 or YYYY-MM-DD, a bare day includes the whole day)."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	start, err := parseBound(c.From, false)
	if err != nil {
		return err
	}
	end, err := parseBound(c.To, true)
	if err != nil {
		return err
	}
	if start != nil && end != nil && start.After(*end) {
		return fmt.Errorf("--from (%s) is after --to (%s)", c.From, c.To)
	}

	entries, err := ctx.Store.GetLogs(habit.ID, start, end)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.Println(cli.Muted(fmt.Sprintf("No completions recorded for %s.", habit.Name)))
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.CompletedAt.Format(constants.DateFormat),
			e.CompletedAt.Format("15:04") + " UTC",
			e.Notes,
			e.ID,
		})
	}
	ctx.Println(cli.RenderTable([]string{"Day", "Time", "Note", "ID"}, rows))
	return nil
}

// parseBound turns a --from/--to value into a query bound. A bare day used as
// an upper bound covers that whole day.
func parseBound(s string, upper bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := utils.ParseTimestamp(s)
	if err != nil {
		return nil, err
	}
	if upper && !strings.Contains(s, "T") {
		t = utils.EndOfDay(t)
	}
	return &t, nil
}

type LogDeleteCmd struct {
	ID string `arg:"" help:"Completion ID (see 'habitual log list')."`
}

func (c *LogDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteLog(ctx.UserID(), c.ID); err != nil {
		return fmt.Errorf("failed to delete completion %s: %w", c.ID, err)
	}
	ctx.Printf("Deleted completion: %s\n", c.ID)
	return nil
}
