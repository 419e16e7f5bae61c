package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	// Pipeline failures.
	KindUnsupportedFormat Kind = "unsupported_format"
	KindProvider          Kind = "provider"
	KindContract          Kind = "contract"
	KindIO                Kind = "io"

	// Provider failures classified from upstream responses.
	KindTransient  Kind = "transient"
	KindRateLimit  Kind = "rate_limit"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindBadRequest Kind = "bad_request"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

var defaultMessages = map[Kind]string{
	KindUnsupportedFormat: "Unsupported file type.",
	KindProvider:          "Translation backend failed.",
	KindContract:          "Translation backend returned a mismatched number of results.",
	KindIO:                "File could not be read or written.",
	KindTransient:         "Temporary upstream error. Please try again.",
	KindRateLimit:         "Rate limit exceeded. Please try again later.",
	KindAuth:              "Authentication failed. Please verify your credentials and permissions.",
	KindValidation:        "Response validation failed.",
	KindBadRequest:        "Request rejected by upstream API.",
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultMessages[kind]
	}
	if msg == "" {
		msg = "Request failed."
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func UnsupportedFormat(safeMessage string) error {
	return New(KindUnsupportedFormat, safeMessage, nil)
}

func Provider(err error) error {
	return New(KindProvider, "", err)
}

func Contract(safeMessage string) error {
	return New(KindContract, safeMessage, nil)
}

func IO(safeMessage string, err error) error {
	return New(KindIO, safeMessage, err)
}

func Transient(err error) error {
	return New(KindTransient, "", err)
}

func RateLimit(err error) error {
	return New(KindRateLimit, "", err)
}

func Auth(err error) error {
	return New(KindAuth, "", err)
}

func Validation(err error) error {
	return New(KindValidation, "", err)
}

func BadRequest(err error) error {
	return New(KindBadRequest, "", err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsProviderFailure reports whether err came from a translation backend,
// either unclassified or with an upstream classification.
func IsProviderFailure(err error) bool {
	k, ok := KindOf(err)
	if !ok {
		return false
	}
	switch k {
	case KindProvider, KindTransient, KindRateLimit, KindAuth, KindValidation, KindBadRequest:
		return true
	}
	return false
}
