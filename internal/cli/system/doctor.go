package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks never fail the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(c check, err error) {
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	reachable := check{name: "Database reachable", run: checkDBReachable}
	dbErr := reachable.run(ctx)
	report(reachable, dbErr)

	dbChecks := []check{
		{name: "Schema version", run: checkSchemaVersion},
		{name: "Habit integrity", run: checkHabitIntegrity},
		{name: "Completion log integrity", run: checkLogIntegrity},
	}
	for _, c := range dbChecks {
		if dbErr != nil {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		report(c, c.run(ctx))
	}

	for _, c := range []check{
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Clock", run: checkClock},
	} {
		report(c, c.run(ctx))
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return err
	}
	switch {
	case current < latest:
		return fmt.Errorf("%d pending migration(s) (at version %d, latest %d); run 'habitual migrate'",
			latest-current, current, latest)
	case current > latest:
		return fmt.Errorf("schema version %d is newer than supported version %d", current, latest)
	}
	return nil
}

func checkHabitIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.GetHabits(ctx.UserID())
	if err != nil {
		return err
	}
	var errs []error
	for _, h := range habits {
		if err := storage.ValidateHabit(h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkLogIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.GetHabits(ctx.UserID())
	if err != nil {
		return err
	}
	now := ctx.Today()
	var errs []error
	for _, h := range habits {
		entries, err := ctx.Store.GetLogs(h.ID, nil, nil)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := storage.ValidateLog(e); err != nil {
				errs = append(errs, err)
				continue
			}
			if utils.DaysBetween(now, e.CompletedAt) > 0 {
				errs = append(errs, fmt.Errorf("log %s of %s is dated in the future (%s)",
					e.ID, h.Name, e.CompletedAt.Format(constants.DateFormat)))
			}
		}
	}
	return errors.Join(errs...)
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("backups are not managed for PostgreSQL; use pg_dump")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s; run 'habitual backup'", mgr.Dir())
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := ctx.Today()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(constants.TimestampFormat))
	}
	return nil
}
