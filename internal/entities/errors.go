// Package entities contains core business entities and errors.
package entities

import (
	"errors"
	"fmt"
)

// Error kinds. Transport maps responses by kind, never by the concrete error.
var (
	// ErrUnauthenticated signals a missing, invalid or revoked credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden signals an access policy denial.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound signals an unresolved target id.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrInvalidOperation signals an operation the domain always rejects.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = kind(ErrNotFound, "user not found")
	// ErrTeamNotFound signals missing team.
	ErrTeamNotFound = kind(ErrNotFound, "team not found")
	// ErrProjectNotFound signals missing project.
	ErrProjectNotFound = kind(ErrNotFound, "project not found")
	// ErrTaskNotFound signals missing task.
	ErrTaskNotFound = kind(ErrNotFound, "task not found")
	// ErrMemberNotFound signals that the user is not a member of the team.
	ErrMemberNotFound = kind(ErrNotFound, "member not found")

	// ErrAlreadyMember signals duplicate membership.
	ErrAlreadyMember = kind(ErrConflict, "user is already a team member")
	// ErrEmailTaken signals duplicate registration email.
	ErrEmailTaken = kind(ErrConflict, "email already taken")
	// ErrUsernameTaken signals duplicate registration username.
	ErrUsernameTaken = kind(ErrConflict, "username already taken")

	// ErrLeaderRemoval signals an attempt to remove the team leader.
	ErrLeaderRemoval = kind(ErrInvalidOperation, "team leader cannot be removed")

	// ErrBadCredentials signals a login mismatch.
	ErrBadCredentials = kind(ErrUnauthenticated, "invalid credentials")
	// ErrTokenRevoked signals a credential whose session row is gone.
	ErrTokenRevoked = kind(ErrUnauthenticated, "token revoked")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func kind(k error, msg string) error {
	return &kindError{kind: k, msg: msg}
}

// Invalid wraps ErrInvalidArgument with a field-level reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
