package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrTransport indicates that the report server could not be reached at all
// (DNS, connect or timeout failure). It is distinct from the server executing
// and reporting a non-zero result code.
var ErrTransport = errors.New("report server unreachable")

// ErrParse indicates that the report server answered with a body that is not
// valid JSON. For user messaging this is equivalent to ErrTransport, but it is
// logged separately because it is a server-side contract violation.
var ErrParse = errors.New("report server response unparsable")

// ErrOperatorNotValidated indicates that an operator's credentials could not be
// confirmed against the remote POS record. This is a legitimate negative
// result, not a transport or server failure; callers gate destructive
// operations on it.
var ErrOperatorNotValidated = errors.New("operator not validated")

// DomainError is returned when the report server executed the request but
// reported a business or query error via its numeric result code.
type DomainError struct {
	Code       int
	MessageKey string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("report server error %d (%s)", e.Code, e.MessageKey)
}

// NewDomainError creates a DomainError for the given result code and message key.
func NewDomainError(code int, messageKey string) *DomainError {
	return &DomainError{Code: code, MessageKey: messageKey}
}

// AsDomainError unwraps err into a *DomainError if it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
