package services

import (
	"errors"
	"net/http"
)

// Kind classifies every failure the CredentialService can return.
type Kind uint8

const (
	KindRepository Kind = iota
	KindValidation
	KindDuplicateUser
	KindUserNotFound
	KindInvalidCredentials
	KindInvalidToken
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateUser:
		return "duplicate_user"
	case KindUserNotFound:
		return "user_not_found"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindInvalidToken:
		return "invalid_token"
	default:
		return "repository"
	}
}

// Outward messages. User-not-found and bad password share one so callers
// cannot probe which emails are registered.
const (
	msgInternal       = "internal error"
	msgDuplicateUser  = "user already exists"
	msgAuthFailed     = "invalid email or password"
	msgInvalidToken   = "invalid token"
	msgValidationBase = "invalid request"
)

// Error is the only error type the CredentialService returns. Err carries
// the cause for logs; it is never part of Message.
type Error struct {
	Kind Kind
	Err  error
	// Detail refines the message for validation errors only.
	Detail string
}

// Sentinels for errors.Is; matching is by Kind.
var (
	ErrRepository         = &Error{Kind: KindRepository}
	ErrValidation         = &Error{Kind: KindValidation}
	ErrDuplicateUser      = &Error{Kind: KindDuplicateUser}
	ErrUserNotFound       = &Error{Kind: KindUserNotFound}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken}
)

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// NewValidationError reports a request that failed shape validation.
func NewValidationError(detail string, cause error) *Error {
	return &Error{Kind: KindValidation, Err: cause, Detail: detail}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Status is the HTTP-like status code of the outward error category.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindDuplicateUser:
		return http.StatusBadRequest
	case KindUserNotFound, KindInvalidCredentials, KindInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message is safe to show to callers: no causes, no secrets.
func (e *Error) Message() string {
	switch e.Kind {
	case KindValidation:
		if e.Detail != "" {
			return msgValidationBase + ": " + e.Detail
		}
		return msgValidationBase
	case KindDuplicateUser:
		return msgDuplicateUser
	case KindUserNotFound, KindInvalidCredentials:
		return msgAuthFailed
	case KindInvalidToken:
		return msgInvalidToken
	default:
		return msgInternal
	}
}

// AsError normalizes any error into an *Error; foreign errors become
// KindRepository.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(KindRepository, err)
}
