// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import (
	"fmt"
	"strings"

	"github.com/goshuirc/crikey/ircmatch"
)

// Mask is a HostMask or a ServerMask.
type Mask interface {
	String() string
	// Match reports whether a host or server name matches the mask.
	Match(name string) bool
	isMask()
}

// HostMask is a wildcard pattern over hosts, e.g. "*.example.net".
type HostMask struct {
	pattern string
}

// ServerMask is a wildcard pattern over server names, e.g. "*.fi".
type ServerMask struct {
	pattern string
}

func (HostMask) isMask()   {}
func (ServerMask) isMask() {}

func (m HostMask) String() string   { return m.pattern }
func (m ServerMask) String() string { return m.pattern }

func (m HostMask) Match(host string) bool {
	return m.pattern != "" && ircmatch.MakeMatch(m.pattern).Match(host)
}

func (m ServerMask) Match(server string) bool {
	return m.pattern != "" && ircmatch.MakeMatch(m.pattern).Match(server)
}

// ParseHostMask validates a host pattern. With no wildcards the pattern must
// be a valid Host. With wildcards it must contain a "." with no wildcard
// after the last one, and every label between dots must be non-empty: a
// label without wildcards must be a valid host label, and one with
// wildcards may not start or end with "-".
func ParseHostMask(pattern string) (HostMask, error) {
	err := validateMask(pattern, isHostMaskChar, validHostMaskLabel, func(s string) bool {
		_, err := ParseHost(s)
		return err == nil
	})
	if err != nil {
		return HostMask{}, err
	}
	return HostMask{pattern: pattern}, nil
}

// ParseServerMask is ParseHostMask for server names.
func ParseServerMask(pattern string) (ServerMask, error) {
	err := validateMask(pattern, isServerMaskChar, validServerLabel, func(s string) bool {
		_, err := ParseServername(s)
		return err == nil
	})
	if err != nil {
		return ServerMask{}, err
	}
	return ServerMask{pattern: pattern}, nil
}

func validateMask(pattern string, literal func(byte) bool, label func(string) bool, exact func(string) bool) error {
	if len(pattern) == 0 {
		return parseError(InvalidMask)
	}

	wildcards := strings.Count(pattern, "*") + strings.Count(pattern, "?")
	if wildcards == 0 {
		if !exact(pattern) {
			return parseError(InvalidMask)
		}
		return nil
	}
	if wildcards == len(pattern) {
		return parseError(InvalidMask)
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '*' && c != '?' && !literal(c) {
			return parseError(InvalidMask)
		}
	}

	lastDot := strings.LastIndexByte(pattern, '.')
	if lastDot == -1 || strings.ContainsAny(pattern[lastDot:], "*?") {
		return parseError(InvalidMask)
	}

	for _, l := range strings.Split(pattern, ".") {
		if len(l) == 0 {
			return parseError(InvalidMask)
		}
		if strings.ContainsAny(l, "*?") {
			if l[0] == '-' || l[len(l)-1] == '-' {
				return parseError(InvalidMask)
			}
		} else if !label(l) {
			return parseError(InvalidMask)
		}
	}
	return nil
}

// validHostMaskLabel accepts a host label, or the hex-and-colon head of an
// IPv6 literal with a dotted tail.
func validHostMaskLabel(label string) bool {
	if validLabel(label) {
		return true
	}
	if strings.IndexByte(label, ':') == -1 {
		return false
	}
	for i := 0; i < len(label); i++ {
		if c := label[i]; c != ':' && !isHexDigit(c) {
			return false
		}
	}
	return true
}

// validServerLabel is validLabel with underscores allowed.
func validServerLabel(label string) bool {
	if len(label) == 0 || len(label) > maxLabelLen {
		return false
	}
	last := len(label) - 1
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case isLetter(c), isDigit(c), c == '_':
		case c == '-' && i != 0 && i != last:
		default:
			return false
		}
	}
	return true
}

func isHostMaskChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '.' || c == ':'
}

func isServerMaskChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '.' || c == '_'
}

// TargetMask is a Mask together with the discriminator it was written
// with: "$" for server masks, "#" or nothing for host masks.
type TargetMask struct {
	prefix string
	mask   Mask
}

// ParseTargetMask reads "$servermask", "#hostmask" or a bare host mask.
func ParseTargetMask(raw string) (TargetMask, error) {
	switch {
	case strings.HasPrefix(raw, "$"):
		mask, err := ParseServerMask(raw[1:])
		if err != nil {
			return TargetMask{}, err
		}
		return TargetMask{prefix: "$", mask: mask}, nil
	case strings.HasPrefix(raw, "#"):
		mask, err := ParseHostMask(raw[1:])
		if err != nil {
			return TargetMask{}, err
		}
		return TargetMask{prefix: "#", mask: mask}, nil
	}
	mask, err := ParseHostMask(raw)
	if err != nil {
		return TargetMask{}, err
	}
	return TargetMask{mask: mask}, nil
}

// MustParseTargetMask is like ParseTargetMask but panics on error.
func MustParseTargetMask(raw string) TargetMask {
	mask, err := ParseTargetMask(raw)
	if err != nil {
		panic(fmt.Sprintf("irctypes.MustParseTargetMask(%q): %v", raw, err))
	}
	return mask
}

// Mask returns the HostMask or ServerMask.
func (t TargetMask) Mask() Mask { return t.mask }

// Prefix returns the discriminator, which may be empty.
func (t TargetMask) Prefix() string { return t.prefix }

func (t TargetMask) IsZero() bool { return t.mask == nil }

func (t TargetMask) String() string {
	if t.mask == nil {
		return ""
	}
	return t.prefix + t.mask.String()
}

func (t TargetMask) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
