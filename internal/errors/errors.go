package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitual/internal/logger"
)

var (
	// ErrValidation marks input rejected before any storage mutation
	ErrValidation = errors.New("validation failed")
	// ErrReference marks a log entry that points at a habit that does not exist
	ErrReference = errors.New("unknown habit")
)

// Validation returns an ErrValidation for the given field
func Validation(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, msg)
}

// Reference returns an ErrReference for the given habit id
func Reference(habitID int64) error {
	return fmt.Errorf("%w: no habit with id %d", ErrReference, habitID)
}

// IsValidation reports whether err carries ErrValidation
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsReference reports whether err carries ErrReference
func IsReference(err error) bool {
	return errors.Is(err, ErrReference)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
