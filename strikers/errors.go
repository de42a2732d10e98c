package strikers

import (
	"errors"
	"fmt"
)

// Kind classifies every error the client returns.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindInvalidRegion
	KindInvalidPageSize
	KindInvalidUsername
	KindNotFound
	KindUnauthorized
	KindNoRankedHistory
	// KindAmbiguous is only returned when strict resolution is enabled.
	KindAmbiguous
)

var kindNames = map[Kind]string{
	KindUnknown:            "Unknown",
	KindInvalidCredentials: "InvalidCredentials",
	KindInvalidRegion:      "InvalidRegion",
	KindInvalidPageSize:    "InvalidPageSize",
	KindInvalidUsername:    "InvalidUsername",
	KindNotFound:           "NotFound",
	KindUnauthorized:       "Unauthorized",
	KindNoRankedHistory:    "NoRankedHistory",
	KindAmbiguous:          "Ambiguous",
}

var kindMessages = map[Kind]string{
	KindUnknown:            "unknown error",
	KindInvalidCredentials: "token or refresh token missing",
	KindInvalidRegion:      "invalid region",
	KindInvalidPageSize:    "players must be between 1 and 10000",
	KindInvalidUsername:    "username is empty",
	KindNotFound:           "player not found",
	KindUnauthorized:       "token or refresh token not authorized",
	KindNoRankedHistory:    "player has no ranked games or is not among the top 10000 players",
	KindAmbiguous:          "several players match and none exactly",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrUnknown            = &Error{Kind: KindUnknown}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrInvalidRegion      = &Error{Kind: KindInvalidRegion}
	ErrInvalidPageSize    = &Error{Kind: KindInvalidPageSize}
	ErrInvalidUsername    = &Error{Kind: KindInvalidUsername}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrNoRankedHistory    = &Error{Kind: KindNoRankedHistory}
	ErrAmbiguous          = &Error{Kind: KindAmbiguous}
)

// Error is the error type returned by every Client operation.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "ranked".
	Op string
	// Detail adds context such as the rejected input.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := "strikers"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	msg += ": " + kindMessages[e.Kind]
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of err, or KindUnknown when err does not come from
// this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op, detail string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail, Err: cause}
}
