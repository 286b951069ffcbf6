package crud

import (
	"errors"

	"github.com/armature-dev/armature/validate"
)

// ErrNotFound is returned when an id-scoped operation references a
// record that does not exist. It is a distinct failure from both
// validation errors and data-access errors.
var ErrNotFound = errors.New("crud: record not found")

// ValidationError carries the field→messages error bag produced when a
// write is rejected by the model's rule set. No persistence call is
// made once validation fails.
type ValidationError struct {
	Errors validate.Errors
}

func (e *ValidationError) Error() string {
	return "crud: validation failed"
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
