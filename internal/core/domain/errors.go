package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable class of a failure returned to API clients.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation_error"
	KindPostcodeInvalid    ErrorKind = "postcode_invalid"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindPermissionDenied   ErrorKind = "permission_denied"
	KindNotAuthenticated   ErrorKind = "not_authenticated"
	KindNotFound           ErrorKind = "not_found"
	KindDuplicateEdge      ErrorKind = "duplicate_edge"
	KindDomainRule         ErrorKind = "domain_rule_violation"
)

// Error is a failure that can be reported to the caller as is.
// Fields holds per-field messages for validation failures.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

var (
	ErrRadiusInvalid      = &Error{Kind: KindValidation, Message: "Please enter a valid radius in miles, e.g. 0.5"}
	ErrPostcodeInvalid    = &Error{Kind: KindPostcodeInvalid, Message: "Please enter a valid UK postcode"}
	ErrServiceUnavailable = &Error{Kind: KindServiceUnavailable, Message: "Postcode verification service temporarily unavailable, please report this and try again later."}

	ErrNotFound           = &Error{Kind: KindNotFound, Message: "Not found."}
	ErrPermissionDenied   = &Error{Kind: KindPermissionDenied, Message: "You do not have permission to perform this action."}
	ErrAuthRequired       = &Error{Kind: KindPermissionDenied, Message: "Authentication credentials were not provided."}
	ErrSellerOnly         = &Error{Kind: KindPermissionDenied, Message: "Only seller accounts can list properties."}
	ErrInvalidCredentials = &Error{Kind: KindNotAuthenticated, Message: "Unable to log in with provided credentials."}
	ErrTokenInvalid       = &Error{Kind: KindNotAuthenticated, Message: "Given token not valid or expired."}

	ErrDuplicateEdge    = &Error{Kind: KindDuplicateEdge, Message: "possible duplicate"}
	ErrCannotFollowSelf = &Error{Kind: KindDomainRule, Message: "You can't follow yourself."}
	ErrTargetNotSeller  = &Error{Kind: KindDomainRule, Message: "You can't follow a user that isn't a seller."}
	ErrUsernameTaken    = &Error{Kind: KindValidation, Message: "A user with that username already exists.", Fields: map[string]string{"username": "A user with that username already exists."}}
)

// NewValidationError builds a validation failure, optionally keyed by field.
func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NewFieldError is a validation failure for a single field.
func NewFieldError(field, message string) *Error {
	return NewValidationError(message, map[string]string{field: message})
}

// KindOf reports the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}
