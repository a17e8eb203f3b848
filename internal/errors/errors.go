package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/heartline/internal/logger"
)

// ErrNoIndexDate is returned when neither the profile nor the onboarding cache
// carries an index event date. Callers should prompt for onboarding.
var ErrNoIndexDate = errors.New("no index event date on record")

// ReadError reports a failed read of one journey data source.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsReadFailure reports whether err wraps a ReadError
func IsReadFailure(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
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
