// Package apperr holds the single error type shared by every stage of the
// login/search pipeline. Callers branch on Kind rather than on message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Config covers bad arguments and malformed credentials files.
	Config Kind = iota + 1
	// Token means the execution token could not be found on the login page.
	Token
	// IO means a local file could not be read.
	IO
	// Transport means the request never produced an HTTP response.
	Transport
	// HTTP means the server answered with an unexpected status.
	HTTP
	// Decode means a response body was not valid text.
	Decode
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case Token:
		return "token"
	case IO:
		return "io"
	case Transport:
		return "transport"
	case HTTP:
		return "http"
	case Decode:
		return "decode"
	default:
		return "unknown"
	}
}

// Stage reports whether the kind belongs to input parsing ("parse") or to
// talking to the remote endpoints ("request").
func (k Kind) Stage() string {
	switch k {
	case Transport, HTTP, Decode:
		return "request"
	default:
		return "parse"
	}
}

// Error is the tagged error returned by config, auth and the Denodo service.
type Error struct {
	Kind   Kind
	Op     string // e.g. "fetch login page", "login", "search"
	Status int    // HTTP status, only set for Kind HTTP
	Body   string // best-effort response body, only set for Kind HTTP
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Kind == HTTP && e.Status != 0 {
		msg = fmt.Sprintf("HTTP %d", e.Status)
		if e.Msg != "" {
			msg = e.Msg + ": " + msg
		}
		if e.Body != "" {
			msg += ", body: " + e.Body
		}
	}
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap builds an error of the given kind around err.
func Wrap(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// Status builds an HTTP error for an unexpected response status.
func Status(op string, status int, body string) *Error {
	return &Error{Kind: HTTP, Op: op, Status: status, Body: body}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
