// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import (
	"fmt"

	"github.com/goshuirc/crikey/ircmap"
)

// Nickname is a validated IRC nickname:
//
//	nickname = ( letter / special ) *( letter / digit / special / "-" )
//	special  = "[" / "\" / "]" / "^" / "_" / "`" / "{" / "|" / "}"
type Nickname struct {
	name string
}

// ParseNickname validates raw as a nickname no longer than limits.NickLen.
func ParseNickname(raw string, limits Limits) (Nickname, error) {
	if len(raw) == 0 {
		return Nickname{}, parseError(Empty)
	}
	if len(raw) > limits.nickLen() {
		return Nickname{}, parseError(TooLong)
	}
	if !isLetter(raw[0]) && !isSpecial(raw[0]) {
		return Nickname{}, parseError(InvalidLeadingChar)
	}
	for i, r := range raw {
		if r > 0x7f || !isNickChar(byte(r)) {
			return Nickname{}, invalidChar(i, r)
		}
	}
	return Nickname{name: raw}, nil
}

// MustParseNickname is like ParseNickname with default limits but panics on error.
func MustParseNickname(raw string) Nickname {
	nick, err := ParseNickname(raw, Limits{})
	if err != nil {
		panic(fmt.Sprintf("irctypes.MustParseNickname(%q): %v", raw, err))
	}
	return nick
}

func (n Nickname) String() string { return n.name }

// IsZero reports whether n was never parsed.
func (n Nickname) IsZero() bool { return n.name == "" }

// Casefold returns the nickname folded under the limits' casemapping.
func (n Nickname) Casefold(limits Limits) string {
	folded, err := ircmap.Casefold(limits.Mapping(), n.name)
	if err != nil {
		return n.name
	}
	return folded
}

// Equal compares two nicknames the way the server does.
func (n Nickname) Equal(other Nickname, limits Limits) bool {
	return ircmap.Equal(limits.Mapping(), n.name, other.name)
}

func (n Nickname) MarshalText() ([]byte, error) {
	return []byte(n.name), nil
}

// UnmarshalText validates with default limits.
func (n *Nickname) UnmarshalText(data []byte) error {
	parsed, err := ParseNickname(string(data), Limits{})
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// isSpecial covers %x5B-60 / %x7B-7D.
func isSpecial(c byte) bool {
	return ('[' <= c && c <= '`') || ('{' <= c && c <= '}')
}

func isNickChar(c byte) bool {
	return isLetter(c) || isDigit(c) || isSpecial(c) || c == '-'
}
