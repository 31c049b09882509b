package failure

import (
	"errors"
	"net/http"
)

// Reason values are stable machine-readable codes. Client UIs branch on them,
// so they must never change once published.
const (
	ReasonValidation        = "VALIDATION"
	ReasonNotFound          = "NOT_FOUND"
	ReasonTableInvalid      = "TABLE_INVALID"
	ReasonCapacityExceeded  = "CAPACITY_EXCEEDED"
	ReasonSlotConflict      = "SLOT_CONFLICT"
	ReasonForbidden         = "FORBIDDEN"
	ReasonUnauthorized      = "UNAUTHORIZED"
	ReasonInvalidTransition = "INVALID_TRANSITION"
	ReasonConflict          = "CONFLICT"
	ReasonInternal          = "INTERNAL"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Reason: ReasonValidation, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Reason: ReasonValidation, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Reason: ReasonForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Reason: ReasonForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Reason:  ReasonValidation,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Reason:  ReasonValidation,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Reason:  ReasonUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Reason:  ReasonInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Reason:  ReasonNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Reason:  ReasonConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Reason:  ReasonForbidden,
		Message: msg,
	}
}

// TableInvalid rejects a reservation naming a table that does not exist or is inactive.
func TableInvalid(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonTableInvalid,
		Message: msg,
	}
}

// CapacityExceeded rejects a reservation whose tables cannot seat the party.
func CapacityExceeded(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonCapacityExceeded,
		Message: msg,
	}
}

// SlotConflict rejects a reservation whose slot span is already held.
func SlotConflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Reason:  ReasonSlotConflict,
		Message: msg,
	}
}

// InvalidTransition rejects an illegal reservation lifecycle change.
func InvalidTransition(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonInvalidTransition,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the stable reason code of an error interface.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ReasonInternal
}
