package oauth

import (
	"fmt"
	"time"
)

// DeniedError indicates the authorization server redirected back with an
// error instead of a code (the user declined, or the request was rejected).
type DeniedError struct {
	// Code is the OAuth error code (e.g. "user_cancelled_authorize").
	Code string
	// Description is the human-readable error description, if provided.
	Description string
}

// Error returns the provider's error code and description.
func (e *DeniedError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("authorization failed: %s - %s", e.Code, e.Description)
	}
	return fmt.Sprintf("authorization failed: %s", e.Code)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *DeniedError) Is(target error) bool {
	_, ok := target.(*DeniedError)
	return ok
}

// StateMismatchError indicates the callback carried a state parameter that
// does not match the one generated for this flow. This is the anti-CSRF
// check; a mismatch is always fatal even when a code is present.
type StateMismatchError struct{}

// Error implements the error interface.
func (e *StateMismatchError) Error() string {
	return "state mismatch - possible CSRF attack"
}

// Is allows errors.Is() to work with wrapped errors.
func (e *StateMismatchError) Is(target error) bool {
	_, ok := target.(*StateMismatchError)
	return ok
}

// FlowFailedError wraps a terminal flow failure past the callback: a broken
// code exchange, profile fetch or credential write.
type FlowFailedError struct {
	Err error
}

// Error implements the error interface.
func (e *FlowFailedError) Error() string {
	return fmt.Sprintf("oauth flow failed: %v", e.Err)
}

// Unwrap exposes the underlying failure.
func (e *FlowFailedError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is() to work with wrapped errors.
func (e *FlowFailedError) Is(target error) bool {
	_, ok := target.(*FlowFailedError)
	return ok
}

// TimeoutError indicates no callback arrived within the bounded wait.
type TimeoutError struct {
	// Wait is how long the flow waited for the callback.
	Wait time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no authorization callback received within %s", e.Wait)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *TimeoutError) Is(target error) bool {
	_, ok := target.(*TimeoutError)
	return ok
}
