package ckan

import (
	"errors"
	"fmt"
)

// Static errors for validation failures and programmer-error conditions.
var (
	ErrUnknownTargetObject = errors.New("unknown target object")
	ErrUnknownRole         = errors.New("unknown membership role")
	ErrRoleNotSupported    = errors.New("granting role \"none\" is not yet supported")
	ErrObjectIDRequired    = errors.New("target object id is required")
	ErrUserIDRequired      = errors.New("user id is required")
	ErrPayloadRequired     = errors.New("payload required for making a POST request")
	ErrNoPayloadBuilder    = errors.New("payload builder not found")
	ErrInfileRequired      = errors.New("input file is required")
	ErrNoIDsGiven          = errors.New("no object ids given")
	ErrURLBaseRequired     = errors.New("urlbase is required")
	ErrNoAPIKeyInProfile   = errors.New("no apikey in user profile")
	ErrNoRequestID         = errors.New("no request id in access request response")
)

// APIError is a non-2xx response from the portal.
type APIError struct {
	StatusCode int
	Action     string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("action %s failed with status %d", e.Action, e.StatusCode)
	}

	return fmt.Sprintf("action %s failed with status %d: %s", e.Action, e.StatusCode, e.Message)
}

// CommandError wraps a failure crossing the command boundary, keeping the
// original error available as the cause.
type CommandError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Err == nil {
		return e.Op
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the cause.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with the failing operation's name.
func NewCommandError(op string, err error) *CommandError {
	return &CommandError{Op: op, Err: err}
}
