package analysis

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// Kind classifies why an analysis failed.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindMissingCredential Kind = "missing_credential"
	KindAnalyzerFailure   Kind = "analyzer_failure"
	KindMalformedResponse Kind = "malformed_response"
)

// Error is the only error type Service.Analyze returns.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so errors.Is(err, ErrInvalidInput) works for any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrMissingCredential = &Error{Kind: KindMissingCredential}
	ErrAnalyzerFailure   = &Error{Kind: KindAnalyzerFailure}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
)

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func InvalidInput(msg string) error { return newError(KindInvalidInput, msg, nil) }
func MissingCredential(msg string) error { return newError(KindMissingCredential, msg, nil) }
func AnalyzerFailure(err error) error { return newError(KindAnalyzerFailure, "", err) }
func MalformedResponse(msg string, err error) error { return newError(KindMalformedResponse, msg, err) }

// KindOf returns the Kind carried by err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
