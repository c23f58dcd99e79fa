package account

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure and determines its HTTP status.
type Kind int

const (
	KindUnexpected Kind = iota
	KindConfiguration
	KindAuthentication
	KindAuthorization
	KindValidation
	KindDownstream
	KindMethod
	KindPayloadTooLarge
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindConfiguration:
		return http.StatusInternalServerError
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation, KindDownstream:
		return http.StatusBadRequest
	case KindMethod:
		return http.StatusMethodNotAllowed
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure whose Message is safe to show the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configError(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}

func authnError(msg string, err error) *Error {
	return &Error{Kind: KindAuthentication, Message: msg, Err: err}
}

func authzError(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// bodyError classifies a failure to read the request body.
func bodyError(err error) *Error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &Error{Kind: KindPayloadTooLarge, Message: msgBodyTooLarge, Err: err}
	}
	return &Error{Kind: KindValidation, Message: msgInvalidBody, Err: err}
}

func downstreamError(msg string, err error) *Error {
	return &Error{Kind: KindDownstream, Message: msg, Err: err}
}
