package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition = errors.New("no transition declared for the requested status change")
	ErrForbidden         = errors.New("acting role is not allowed to perform this transition")
	ErrUnknownStatus     = errors.New("unknown project status")
)

// ValidationError carries every rule that failed for a single transition
// attempt. Rules are listed in declaration order.
type ValidationError struct {
	FailedRules []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("transition validation failed: %s", strings.Join(e.FailedRules, ", "))
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
