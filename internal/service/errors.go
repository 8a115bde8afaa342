package service

import (
	"errors"
	"fmt"

	"github.com/straye-as/sales-crm-api/internal/authz"
	"gorm.io/gorm"
)

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUserNotFound is returned when a user profile is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRole is returned when an invalid role is provided
	ErrInvalidRole = errors.New("invalid role")
)

// Error codes carried by *Error
const (
	CodeForbiddenAdminOnly = "forbidden_admin_only"
	CodeMissingRoleFields  = "missing_role_fields"
	CodeSelfDelete         = "self_delete"
	CodeAdminDelete        = "admin_delete"
	CodeInUse              = "in_use"
	CodeOutsideTeam        = "outside_team"
)

// Error is a coded business rule violation. It unwraps to one of the
// sentinels above so handlers can pick a status with errors.Is.
type Error struct {
	Code    string
	Message string
	Fields  []string
	kind    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.kind
}

func newError(kind error, code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), kind: kind}
}

// ErrorCode returns the code of a coded error, or "" for anything else
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// translate maps repository and authorization errors onto service sentinels
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, authz.ErrForbidden):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	default:
		return err
	}
}
