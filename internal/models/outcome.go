package models

import (
	"errors"
	"strings"

	"github.com/sandro63/musicdb/internal/shared"
)

// OutcomeKind enumerates the closed set of operation results.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	ValidationFailure
	IntegrityViolation
	NotFound
	Forbidden
	AuthenticationRequired
	// Failure covers anything the repositories could not classify. It is
	// still a controlled outcome, never an uncaught fault.
	Failure
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case ValidationFailure:
		return "validation failure"
	case IntegrityViolation:
		return "integrity violation"
	case NotFound:
		return "not found"
	case Forbidden:
		return "forbidden"
	case AuthenticationRequired:
		return "authentication required"
	default:
		return "failure"
	}
}

// Outcome is the structured result of one operation. Message is
// human-readable and safe to show the user; ID carries the affected row's
// identifier on success.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	ID      int64
}

// Succeeded builds a success outcome for the affected identifier.
func Succeeded(id int64, message string) Outcome {
	return Outcome{Kind: Success, Message: message, ID: id}
}

// OutcomeOf classifies an error from the repository layer into an Outcome.
// A nil error is a success with no message.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return Outcome{Kind: Success}
	case errors.Is(err, shared.ErrValidation):
		return Outcome{Kind: ValidationFailure, Message: reason(err, shared.ErrValidation)}
	case errors.Is(err, shared.ErrDuplicate):
		return Outcome{Kind: IntegrityViolation, Message: reason(err, shared.ErrDuplicate)}
	case errors.Is(err, shared.ErrMissingReference):
		return Outcome{Kind: IntegrityViolation, Message: reason(err, shared.ErrMissingReference)}
	case errors.Is(err, shared.ErrHasDependents):
		return Outcome{Kind: IntegrityViolation, Message: reason(err, shared.ErrHasDependents)}
	case errors.Is(err, shared.ErrNotFound):
		return Outcome{Kind: NotFound, Message: reason(err, shared.ErrNotFound)}
	case errors.Is(err, shared.ErrForbidden):
		return Outcome{Kind: Forbidden, Message: reason(err, shared.ErrForbidden)}
	case errors.Is(err, shared.ErrNotAuthenticated):
		return Outcome{Kind: AuthenticationRequired, Message: reason(err, shared.ErrNotAuthenticated)}
	default:
		return Outcome{Kind: Failure, Message: "something went wrong; the change was not saved"}
	}
}

// reason strips the trailing sentinel text so the user sees only the
// operation-specific part, e.g. "artist name is required" instead of
// "artist name is required: invalid input".
func reason(err, sentinel error) string {
	msg := err.Error()
	if trimmed, ok := strings.CutSuffix(msg, ": "+sentinel.Error()); ok {
		return trimmed
	}
	return msg
}
