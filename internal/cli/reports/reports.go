package reports

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
)

type StatsCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or ID (default: all habits)."`
	Days  int    `help:"Reporting window in days (default from config)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	window := ctx.Config.WindowDays
	if c.Days != 0 {
		window = c.Days
	}
	if window < 0 {
		return fmt.Errorf("--days must not be negative, got %d", window)
	}
	now := ctx.Today()
	svc := ctx.Stats()

	if c.Habit != "" {
		habit, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		report, err := svc.HabitStats(ctx.UserID(), habit.ID, window, now)
		if err != nil {
			return err
		}
		ctx.Println(cli.RenderTable(statsHeaders, [][]string{statsRow(report)}))
		return report.Err
	}

	reports, overall, err := svc.AllHabitsStats(ctx.UserID(), window, now)
	if reports == nil && err != nil {
		return err
	}
	if len(reports) == 0 {
		ctx.Println(cli.Muted("No habits found. Add one with: habitual habit add <name>"))
		return nil
	}

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, statsRow(r))
	}
	ctx.Println(cli.RenderTable(statsHeaders, rows))
	ctx.Printf("Overall: %s across %d habits over the last %d days\n",
		cli.FormatRate(overall.OverallCompletionRate), overall.TotalHabits, window)
	return err
}

var statsHeaders = []string{"Habit", "Frequency", "Completed", "Rate", "Current", "Longest"}

func statsRow(r models.HabitReport) []string {
	if r.Err != nil {
		return []string{r.Habit.Name, string(r.Habit.Frequency), "error", "-", "-", "-"}
	}
	s := r.Stats
	return []string{
		r.Habit.Name,
		string(r.Habit.Frequency),
		fmt.Sprintf("%d/%d", s.CompletedDays, s.TotalDays),
		cli.FormatRate(s.CompletionRate),
		fmt.Sprintf("%d", s.StreakCurrent),
		fmt.Sprintf("%d", s.StreakLongest),
	}
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	now := ctx.Today()
	results, err := ctx.Stats().TodayHabits(ctx.UserID(), now)
	if results == nil && err != nil {
		return err
	}
	if len(results) == 0 {
		ctx.Println(cli.Muted("No habits found. Add one with: habitual habit add <name>"))
		return nil
	}

	done, due := 0, 0
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "not due"
		switch {
		case r.Err != nil:
			status = "error"
		case r.CompletedToday:
			status = "[x] done"
			done++
		case r.DueToday:
			status = "[ ] due"
			due++
		}
		rows = append(rows, []string{r.Habit.Name, string(r.Habit.Frequency), status})
	}

	ctx.Printf("Habits for %s\n", now.Format("Monday, 2006-01-02"))
	ctx.Println(cli.RenderTable([]string{"Habit", "Frequency", "Today"}, rows))
	ctx.Printf("Done: %d, still due: %d\n", done, due)
	return err
}
