// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import (
	"fmt"
)

// ErrorKind is the reason a token was rejected.
type ErrorKind int

const (
	// Empty means the input had zero length.
	Empty ErrorKind = iota + 1
	// TooLong means the input exceeded the configured maximum length.
	TooLong
	// InvalidLeadingChar means the first character broke the leading-character rule.
	InvalidLeadingChar
	// InvalidChar means a character broke the charset rule.
	InvalidChar
	// InvalidHost means the token is not an IPv4, IPv6, hostname or servername.
	InvalidHost
	// InvalidMask means a wildcard pattern was empty, all wildcards, or malformed.
	InvalidMask
	// UnresolvedTarget means a message target matched no resolution rule.
	UnresolvedTarget
)

var kindNames = map[ErrorKind]string{
	Empty:              "empty",
	TooLong:            "too long",
	InvalidLeadingChar: "invalid leading character",
	InvalidChar:        "invalid character",
	InvalidHost:        "invalid host",
	InvalidMask:        "invalid mask",
	UnresolvedTarget:   "unresolved target",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is returned by every validator in this package. Position and
// Char are only meaningful for InvalidChar; Position is a byte offset into
// the token that was passed to the failing Parse function.
type ParseError struct {
	Kind     ErrorKind
	Position int
	Char     rune
}

func (e *ParseError) Error() string {
	if e.Kind == InvalidChar {
		return fmt.Sprintf("irctypes: %s %q at position %d", e.Kind, e.Char, e.Position)
	}
	return "irctypes: " + e.Kind.String()
}

// Is reports whether target is a *ParseError of the same Kind, so that
// errors.Is(err, ErrorInvalidChar) matches regardless of position.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

// The sentinels below are for errors.Is only. Validators return a fresh
// *ParseError, so one obtained through errors.As may be modified freely.
var (
	// ErrorEmpty indicates that the given token was empty.
	ErrorEmpty = &ParseError{Kind: Empty}

	// ErrorTooLong indicates that the given token exceeded its length limit.
	ErrorTooLong = &ParseError{Kind: TooLong}

	// ErrorInvalidLeadingChar indicates a bad first character or sigil.
	ErrorInvalidLeadingChar = &ParseError{Kind: InvalidLeadingChar}

	// ErrorInvalidChar indicates a character outside the allowed charset.
	ErrorInvalidChar = &ParseError{Kind: InvalidChar}

	// ErrorInvalidHost indicates that no host grammar matched.
	ErrorInvalidHost = &ParseError{Kind: InvalidHost}

	// ErrorInvalidMask indicates a malformed wildcard mask.
	ErrorInvalidMask = &ParseError{Kind: InvalidMask}

	// ErrorUnresolvedTarget indicates that a message target could not be classified.
	ErrorUnresolvedTarget = &ParseError{Kind: UnresolvedTarget}
)

func parseError(kind ErrorKind) error {
	return &ParseError{Kind: kind}
}

func invalidChar(position int, char rune) error {
	return &ParseError{Kind: InvalidChar, Position: position, Char: char}
}

// shiftPosition re-bases an InvalidChar position after the caller stripped
// a prefix of length offset from the token.
func shiftPosition(err error, offset int) error {
	if pe, ok := err.(*ParseError); ok && pe.Kind == InvalidChar {
		return invalidChar(pe.Position+offset, pe.Char)
	}
	return err
}
