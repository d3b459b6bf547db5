// Copyright (c) 2026 The crikey authors
// released under the ISC license

// Package ircmatch matches strings against IRC-style wildcard masks, where
// '*' matches any run of characters and '?' matches exactly one. Every other
// character, including the glob metacharacters []{}\ that are legal in
// nicknames, is literal. Matching is casefolded.
package ircmatch

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/goshuirc/crikey/ircmap"
)

// Matcher is a compiled mask.
type Matcher struct {
	mapping ircmap.MappingType
	glob    glob.Glob
}

// MakeMatch compiles mask using rfc1459 casefolding.
func MakeMatch(mask string) Matcher {
	return MakeMatchMapping(ircmap.RFC1459, mask)
}

// MakeMatchMapping compiles mask under the given casemapping. A mask that
// cannot be folded under the mapping is compiled unfolded.
func MakeMatchMapping(mapping ircmap.MappingType, mask string) Matcher {
	if folded, err := ircmap.Casefold(mapping, mask); err == nil {
		mask = folded
	}
	return Matcher{
		mapping: mapping,
		// escaped patterns always compile
		glob: glob.MustCompile(translate(mask)),
	}
}

// translate turns an IRC mask into gobwas/glob syntax.
func translate(mask string) string {
	var buf strings.Builder
	for _, r := range mask {
		switch r {
		case '*', '?':
			buf.WriteRune(r)
		default:
			buf.WriteString(glob.QuoteMeta(string(r)))
		}
	}
	return buf.String()
}

// Match reports whether s matches the mask.
func (m Matcher) Match(s string) bool {
	if m.glob == nil {
		return false
	}
	if folded, err := ircmap.Casefold(m.mapping, s); err == nil {
		s = folded
	}
	return m.glob.Match(s)
}
