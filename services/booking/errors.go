package booking

import (
	"fmt"
	"time"
)

// Policy rejection codes. Every rejection is terminal for the request; the
// HTTP layer maps each code to a stable status.
const (
	CodeInvalidProvider = "invalidProvider"
	CodePastDate        = "pastDate"
	CodeSlotUnavailable = "slotUnavailable"
	CodeUnauthorized    = "unauthorized"
	CodeCancelTooLate   = "cancelTooLate"
)

// PolicyError is a tagged booking-policy rejection.
type PolicyError struct {
	Code    string
	Message string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrInvalidProvider = &PolicyError{
		Code:    CodeInvalidProvider,
		Message: "You can only create appointments with providers",
	}
	ErrPastDate = &PolicyError{
		Code:    CodePastDate,
		Message: "Past dates are not permitted",
	}
	ErrSlotUnavailable = &PolicyError{
		Code:    CodeSlotUnavailable,
		Message: "Appointment date is not available",
	}
	ErrUnauthorized = &PolicyError{
		Code:    CodeUnauthorized,
		Message: "You don't have permission to cancel this appointment",
	}
)

// errCancelTooLate spells out the configured cutoff in the rejection message.
func errCancelTooLate(cutoff time.Duration) *PolicyError {
	return &PolicyError{
		Code:    CodeCancelTooLate,
		Message: fmt.Sprintf("You can only cancel appointments %d hours in advance", int(cutoff.Hours())),
	}
}
