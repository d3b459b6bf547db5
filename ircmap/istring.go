// Copyright (c) 2026 The crikey authors
// portions written by Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package ircmap

import (
	"errors"
	"strings"

	"golang.org/x/text/secure/precis"

	"github.com/DanielOaks/go-idn/idna2003/stringprep"
)

// MappingType values represent the types of IRC casemapping we support.
type MappingType int

const (
	// NONE represents no casemapping.
	NONE MappingType = 0 + iota

	// ASCII represents the traditional "ascii" casemapping.
	ASCII

	// RFC1459 represents the casemapping defined by "rfc1459", where
	// []\~ are the uppercase forms of {}|^.
	RFC1459

	// RFC1459Strict is "strict-rfc1459": like RFC1459 but ~ and ^ are
	// not considered equivalent.
	RFC1459Strict

	// RFC3454 represents the UTF-8 nameprep casefolding.
	RFC3454

	// RFC7613 represents the PRECIS UsernameCaseMapped profile.
	RFC7613
)

var (
	// ErrorUnknownMapping indicates an unsupported CASEMAPPING name.
	ErrorUnknownMapping = errors.New("unknown casemapping")

	// Mappings is a mapping of ISUPPORT CASEMAPPING strings to our MappingTypes.
	Mappings = map[string]MappingType{
		"ascii":          ASCII,
		"rfc1459":        RFC1459,
		"strict-rfc1459": RFC1459Strict,
		"rfc1459-strict": RFC1459Strict,
		"rfc3454":        RFC3454,
		"rfc7613":        RFC7613,
		"precis":         RFC7613,
	}
)

// ParseMapping returns the MappingType advertised under the given
// CASEMAPPING name, matched case-insensitively.
func ParseMapping(name string) (MappingType, error) {
	mapping, ok := Mappings[strings.ToLower(name)]
	if !ok {
		return NONE, ErrorUnknownMapping
	}
	return mapping, nil
}

func (mapping MappingType) String() string {
	switch mapping {
	case ASCII:
		return "ascii"
	case RFC1459:
		return "rfc1459"
	case RFC1459Strict:
		return "strict-rfc1459"
	case RFC3454:
		return "rfc3454"
	case RFC7613:
		return "rfc7613"
	}
	return "none"
}

// rfc1459Fold folds the special chars defined by RFC1459; letters were
// already lowered by strings.ToLower.
func rfc1459Fold(r rune) rune {
	if '[' <= r && r <= '^' {
		r += '{' - '['
	}
	return r
}

func rfc1459StrictFold(r rune) rune {
	if '[' <= r && r <= ']' {
		r += '{' - '['
	}
	return r
}

// Casefold returns a string, lowercased/casefolded according to the given
// mapping (or an error if the given string is not valid in the chosen mapping).
func Casefold(mapping MappingType, input string) (string, error) {
	switch mapping {
	case ASCII:
		// only A-Z fold; other bytes pass through
		return asciiLower(input), nil
	case RFC1459:
		return strings.Map(rfc1459Fold, asciiLower(input)), nil
	case RFC1459Strict:
		return strings.Map(rfc1459StrictFold, asciiLower(input)), nil
	case RFC3454:
		return stringprep.Nameprep(input)
	case RFC7613:
		return precis.UsernameCaseMapped.CompareKey(input)
	}
	return input, nil
}

// Equal reports whether a and b fold to the same string. Strings that
// cannot be folded are only equal if they are byte-identical.
func Equal(mapping MappingType, a, b string) bool {
	if a == b {
		return true
	}
	fa, err := Casefold(mapping, a)
	if err != nil {
		return false
	}
	fb, err := Casefold(mapping, b)
	if err != nil {
		return false
	}
	return fa == fb
}

func asciiLower(input string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, input)
}
