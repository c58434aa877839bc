package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits, newest first."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit with its statistics."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion log."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description." short:"d"`
	Frequency   string `help:"How often the habit is due (daily, weekly, monthly)." short:"f" default:"daily"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	freq, err := models.ParseFrequency(c.Frequency)
	if err != nil {
		return err
	}

	if _, err := ctx.Store.GetHabitByName(ctx.UserID(), name); err == nil {
		return fmt.Errorf("habit with name %q already exists", name)
	}

	now := ctx.Today()
	habit := models.Habit{
		ID:          uuid.New().String(),
		UserID:      ctx.UserID(),
		Name:        name,
		Description: c.Description,
		Frequency:   freq,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	logger.Debug("Added habit", "id", habit.ID, "frequency", habit.Frequency)
	ctx.Printf("Added %s habit: %s\n", habit.Frequency, habit.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetHabits(ctx.UserID())
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println(cli.Muted("No habits found. Add one with: habitual habit add <name>"))
		return nil
	}

	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, []string{
			h.Name,
			string(h.Frequency),
			h.Description,
			h.CreatedAt.Format(constants.DateFormat),
		})
	}
	ctx.Println(cli.RenderTable([]string{"Habit", "Frequency", "Description", "Created"}, rows))
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Days  int    `help:"Reporting window in days (default from config)."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	window := ctx.Config.WindowDays
	if c.Days > 0 {
		window = c.Days
	}
	now := ctx.Today()

	report, err := ctx.Stats().HabitStats(ctx.UserID(), habit.ID, window, now)
	if err != nil {
		return err
	}
	if report.Err != nil {
		return report.Err
	}
	today, err := ctx.Stats().TodayHabit(habit, now)
	if err != nil {
		return err
	}

	s := report.Stats
	ctx.Printf("%s (%s)\n", habit.Name, habit.Frequency)
	if habit.Description != "" {
		ctx.Printf("  %s\n", habit.Description)
	}
	ctx.Printf("  ID:              %s\n", habit.ID)
	ctx.Printf("  Created:         %s\n", habit.CreatedAt.Format(constants.DateFormat))
	ctx.Printf("  Today:           %s\n", statusLabel(today))
	ctx.Printf("  Current streak:  %d\n", s.StreakCurrent)
	ctx.Printf("  Longest streak:  %d\n", s.StreakLongest)
	ctx.Printf("  Last %d days:    %d completed (%s)\n", s.TotalDays, s.CompletedDays, cli.FormatRate(s.CompletionRate))
	return nil
}

func statusLabel(t models.TodayHabit) string {
	switch {
	case t.CompletedToday:
		return "done"
	case t.DueToday:
		return "due"
	default:
		return "not due"
	}
}

type HabitEditCmd struct {
	Habit       string `arg:"" help:"Habit name or ID."`
	Name        string `help:"New name."`
	Description string `help:"New description."`
	Frequency   string `help:"New frequency (daily, weekly, monthly)."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	changed := false
	if name := strings.TrimSpace(c.Name); name != "" && name != habit.Name {
		if _, err := ctx.Store.GetHabitByName(ctx.UserID(), name); err == nil {
			return fmt.Errorf("habit with name %q already exists", name)
		}
		habit.Name = name
		changed = true
	}
	if c.Description != "" {
		habit.Description = c.Description
		changed = true
	}
	if c.Frequency != "" {
		freq, err := models.ParseFrequency(c.Frequency)
		if err != nil {
			return err
		}
		habit.Frequency = freq
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to change; pass --name, --description or --frequency")
	}

	habit.UpdatedAt = ctx.Today()
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Yes   bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.AskConfirm(fmt.Sprintf("Delete %q and its whole completion log?", habit.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteHabit(ctx.UserID(), habit.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("habit %q was already deleted: %w", habit.Name, err)
		}
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
