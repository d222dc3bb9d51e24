package httperr

import "errors"

// Business error codes recovered at the HTTP boundary.
const (
	CodeNotFound           = "not_found"
	CodeServiceUnavailable = "service_unavailable"
	CodeClosedOnDate       = "closed_on_date"
	CodeInThePast          = "in_the_past"
	CodeSlotConflict       = "slot_conflict"
	CodeInvalidState       = "invalid_state"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code of a business error, or "" for any
// other error.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
