package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/schedule"
	"github.com/julianstephens/habitual/internal/storage"
)

// Hint returns a short remediation tip for errors the user can act on,
// or an empty string.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, schedule.ErrInvalidFrequency):
		return "fix it with: habitual habit edit <name> --frequency daily|weekly|monthly"
	case errors.Is(err, storage.ErrNotInitialized):
		return "run 'habitual init' first"
	case errors.Is(err, storage.ErrNotFound):
		return "run 'habitual habit list' to see available habits"
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint line when one applies.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  hint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
