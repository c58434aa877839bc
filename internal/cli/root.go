package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/stats"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

// Context is passed to every command's Run method.
type Context struct {
	Store  storage.Provider
	Config config.Config

	// Now, Out and Confirm default to the wall clock, stdout and an
	// interactive prompt when left nil.
	Now     func() time.Time
	Out     io.Writer
	Confirm func(title string) (bool, error)
}

// Today returns the current instant in UTC.
func (c *Context) Today() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

func (c *Context) Printf(format string, args ...any) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format, args...)
}

func (c *Context) Println(args ...any) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, args...)
}

// Stats returns a statistics service backed by the context's store.
func (c *Context) Stats() *stats.Service {
	return stats.NewService(c.Store, c.Config.Concurrency)
}

// UserID is the owner every command acts on behalf of.
func (c *Context) UserID() string {
	return c.Config.UserID
}

// ResolveHabit finds one of the user's habits by name, falling back to its ID.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	habit, err := c.Store.GetHabitByName(c.UserID(), ref)
	if err == nil {
		return habit, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}
	return c.Store.GetHabit(c.UserID(), ref)
}

// AskConfirm asks a yes/no question, interactively unless Confirm is set.
func (c *Context) AskConfirm(title string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title)
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// PerformAutomaticBackup snapshots a SQLite database before destructive
// commands. Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
