// Package apperr defines the closed set of failures the public operations can return.
// Transports map a Kind to their own status codes and expose only PublicMessage.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindNotFound
	KindInvalidToken
	KindExternalService
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindInvalidToken:
		return "invalid_token"
	case KindExternalService:
		return "external_service"
	default:
		return "internal"
	}
}

const (
	msgAuthentication  = "invalid email or password"
	msgInvalidToken    = "invalid or expired recovery code"
	msgExternalService = "notification could not be delivered, try again later"
	msgInternal        = "internal server error"
)

// Error is an application error of a known Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed input. The message is shown to the caller.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Conflict reports a duplicate resource.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Authentication reports bad credentials without saying which part was wrong.
func Authentication() *Error {
	return &Error{Kind: KindAuthentication, Message: msgAuthentication}
}

// NotFound reports a missing resource.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// InvalidToken reports an unusable recovery code without saying why.
func InvalidToken() *Error {
	return &Error{Kind: KindInvalidToken, Message: msgInvalidToken}
}

// ExternalService wraps a failure of a downstream dependency.
func ExternalService(err error) *Error {
	return &Error{Kind: KindExternalService, Message: msgExternalService, Err: err}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: msgInternal, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// PublicMessage returns the text that may be sent to a caller.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return msgInternal
	}
	switch appErr.Kind {
	case KindValidation, KindConflict, KindNotFound:
		return appErr.Message
	case KindAuthentication:
		return msgAuthentication
	case KindInvalidToken:
		return msgInvalidToken
	case KindExternalService:
		return msgExternalService
	default:
		return msgInternal
	}
}
