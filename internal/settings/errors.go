package settings

import (
	"fmt"
	"time"
)

// MissingError indicates that the settings file does not exist, or that a
// required credential field is absent or empty.
// Implements error with actionable guidance.
type MissingError struct {
	// Path is the settings file location that was checked.
	Path string
	// Field is the missing required field, empty when the whole file is absent.
	Field string
}

// Error returns a user-friendly error message with actionable guidance.
func (e *MissingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("missing %s in settings file %s. Run 'linkedinctl login' first", e.Field, e.Path)
	}
	return fmt.Sprintf("settings file not found at %s. Run 'linkedinctl login' first", e.Path)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *MissingError) Is(target error) bool {
	_, ok := target.(*MissingError)
	return ok
}

// InvalidError indicates the settings file exists but cannot be parsed.
type InvalidError struct {
	// Path is the settings file location.
	Path string
	// Reason describes what was wrong with the document.
	Reason string
}

// Error returns a user-friendly error message.
func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid settings file %s: %s", e.Path, e.Reason)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *InvalidError) Is(target error) bool {
	_, ok := target.(*InvalidError)
	return ok
}

// ExpiredError indicates the stored access token has expired.
type ExpiredError struct {
	// ExpiredAt is when the token expired.
	ExpiredAt time.Time
}

// Error returns a user-friendly error message with actionable guidance.
func (e *ExpiredError) Error() string {
	return fmt.Sprintf("access token expired at %s. Run 'linkedinctl login' to re-authenticate",
		e.ExpiredAt.Format(time.RFC3339))
}

// Is allows errors.Is() to work with wrapped errors.
func (e *ExpiredError) Is(target error) bool {
	_, ok := target.(*ExpiredError)
	return ok
}
