package scheduler

import "errors"

// Error taxonomy. All are local and recoverable; mutation operations
// return them without touching their inputs. An unresolvable session is
// NOT an error - resolver and projector report it through an ok bool.
var (
	// ErrInvalidConfig indicates bad calendar parameters
	ErrInvalidConfig = errors.New("invalid calendar configuration")

	// ErrNotFound indicates an operation referencing a missing id
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed mutation payload
	ErrInvalidInput = errors.New("invalid input")
)
