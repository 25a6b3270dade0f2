package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrForbidden          = fmt.Errorf("insufficient privileges")
	ErrTooManyAttempts    = fmt.Errorf("too many login attempts")

	// Input validation errors
	ErrValidation      = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Storage errors. Repositories classify every driver constraint
	// fault into one of these before it leaves the operation.
	ErrNotFound         = fmt.Errorf("record not found")
	ErrDuplicate        = fmt.Errorf("duplicate record")
	ErrMissingReference = fmt.Errorf("referenced record does not exist")
	ErrHasDependents    = fmt.Errorf("record still has dependent rows")
)
