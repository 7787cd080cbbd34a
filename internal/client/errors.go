package client

import (
	"errors"
	"fmt"
)

// Kind discriminates the three ways a call can fail.
type Kind string

const (
	// KindAuthRequired: the call needs a session token and none is stored. No request was sent.
	KindAuthRequired Kind = "auth-required"
	// KindHTTP: the server answered with a non-2xx status.
	KindHTTP Kind = "http"
	// KindNetwork: no response was obtained.
	KindNetwork Kind = "network"
)

const (
	msgAuthRequired = "Authentication required"
	msgHTTPDefault  = "An error occurred"
	msgNetwork      = "Network error occurred"
)

// Sentinels for errors.Is. ErrHTTP matches any HTTP failure regardless of status.
var (
	ErrAuthRequired = &Error{Kind: KindAuthRequired, Message: msgAuthRequired}
	ErrHTTP         = &Error{Kind: KindHTTP}
	ErrNetwork      = &Error{Kind: KindNetwork, Message: msgNetwork}
)

// Error is returned by every failing call of the executor. Status is set only for KindHTTP.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	case KindNetwork:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind, and on Status when the target carries one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Status == 0 || t.Status == e.Status
}

// HasStatus reports whether the server produced a status code for this failure.
func (e *Error) HasStatus() bool {
	return e.Kind == KindHTTP
}

func newAuthRequiredError() *Error {
	return &Error{Kind: KindAuthRequired, Message: msgAuthRequired}
}

func newHTTPError(status int, message string, body []byte) *Error {
	if message == "" {
		message = msgHTTPDefault
	}
	return &Error{Kind: KindHTTP, Status: status, Message: message, Body: body}
}

func newNetworkError(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: msgNetwork, Err: cause}
}

// KindOf returns the failure kind of err, or "" when err did not come from the executor.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsAuthRequired reports whether err is an authentication-required failure.
func IsAuthRequired(err error) bool { return KindOf(err) == KindAuthRequired }

// IsHTTP reports whether err is a server rejection.
func IsHTTP(err error) bool { return KindOf(err) == KindHTTP }

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// StatusOf returns the HTTP status carried by err. ok is false for anything but KindHTTP.
func StatusOf(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.HasStatus() {
		return e.Status, true
	}
	return 0, false
}
