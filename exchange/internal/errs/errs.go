package errs

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindAuthentication     Kind = "AuthenticationError"
	KindAuthorization      Kind = "AuthorizationError"
	KindNotFound           Kind = "NotFoundError"
	KindInvalidState       Kind = "InvalidStateError"
	KindInsufficientPoints Kind = "InsufficientPointsError"
	KindDuplicateRequest   Kind = "DuplicateRequestError"
	KindDeadlineExpired    Kind = "DeadlineExpiredError"
	KindAlreadyResolved    Kind = "AlreadyResolvedError"
	KindInvalidRating      Kind = "InvalidRatingError"
	KindSelfExchange       Kind = "SelfExchangeError"
)

// Error is a business-rule failure. Two errors match under errors.Is when their kinds match.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrAuthentication     = &Error{Kind: KindAuthentication}
	ErrAuthorization      = &Error{Kind: KindAuthorization}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidState       = &Error{Kind: KindInvalidState}
	ErrInsufficientPoints = &Error{Kind: KindInsufficientPoints}
	ErrDuplicateRequest   = &Error{Kind: KindDuplicateRequest}
	ErrDeadlineExpired    = &Error{Kind: KindDeadlineExpired}
	ErrAlreadyResolved    = &Error{Kind: KindAlreadyResolved}
	ErrInvalidRating      = &Error{Kind: KindInvalidRating}
	ErrSelfExchange       = &Error{Kind: KindSelfExchange}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(KindAuthorization, format, args...)
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found", Details: map[string]any{"entity": entity}}
}

func InvalidState(format string, args ...any) *Error {
	return New(KindInvalidState, format, args...)
}

func Duplicate(format string, args ...any) *Error {
	return New(KindDuplicateRequest, format, args...)
}

func InsufficientPoints(required, available int) *Error {
	shortfall := required - available
	return &Error{
		Kind:    KindInsufficientPoints,
		Message: fmt.Sprintf("insufficient points: need %d more", shortfall),
		Details: map[string]any{
			"required":  required,
			"available": available,
			"shortfall": shortfall,
		},
	}
}

func DeadlineExpired(deadline time.Time) *Error {
	return &Error{
		Kind:    KindDeadlineExpired,
		Message: "confirmation deadline has passed, exchange cancelled and points released",
		Details: map[string]any{"confirmationDeadline": deadline.UTC().Format(time.RFC3339)},
	}
}

func InvalidRating(rating int) *Error {
	return &Error{
		Kind:    KindInvalidRating,
		Message: "book condition rating must be between 1 and 5",
		Details: map[string]any{"rating": rating},
	}
}

func SelfExchange() *Error {
	return New(KindSelfExchange, "cannot request your own book")
}

func AlreadyResolved() *Error {
	return New(KindAlreadyResolved, "report is already resolved")
}

// As extracts the business error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Internal errors surfaced to callers unchanged.
var (
	ErrConflict = errors.New("concurrent update, retries exhausted")
)
