// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/asaskevich/govalidator"
)

const (
	maxHostnameLen = 255
	maxLabelLen    = 63
)

// Host is one of Ipv4Addr, Ipv6Addr, Hostname or Servername.
type Host interface {
	String() string
	isHost()
}

// IPAddr is a Host that is an address literal.
type IPAddr interface {
	Host
	Addr() netip.Addr
}

// Ipv4Addr is a dotted-quad literal such as "192.168.0.1".
type Ipv4Addr struct {
	raw  string
	addr netip.Addr
}

// Ipv6Addr is a colon-hex literal such as "::1".
type Ipv6Addr struct {
	raw  string
	addr netip.Addr
}

// Hostname is a DNS host name made of letter-digit-hyphen labels.
type Hostname struct {
	name string
}

// Servername names a server. It accepts everything Hostname does plus
// underscores in labels and a trailing dot, both of which show up in the
// names real servers give themselves.
type Servername struct {
	name string
}

func (Ipv4Addr) isHost()   {}
func (Ipv6Addr) isHost()   {}
func (Hostname) isHost()   {}
func (Servername) isHost() {}

func (a Ipv4Addr) String() string   { return a.raw }
func (a Ipv6Addr) String() string   { return a.raw }
func (h Hostname) String() string   { return h.name }
func (s Servername) String() string { return s.name }

func (a Ipv4Addr) Addr() netip.Addr { return a.addr }
func (a Ipv6Addr) Addr() netip.Addr { return a.addr }

func (s Servername) IsZero() bool { return s.name == "" }

func (a Ipv4Addr) MarshalText() ([]byte, error)   { return []byte(a.raw), nil }
func (a Ipv6Addr) MarshalText() ([]byte, error)   { return []byte(a.raw), nil }
func (h Hostname) MarshalText() ([]byte, error)   { return []byte(h.name), nil }
func (s Servername) MarshalText() ([]byte, error) { return []byte(s.name), nil }

// ParseHost resolves raw to exactly one Host variant. Address grammars are
// tried first and are final: a token made only of digits and dots is an
// IPv4 literal or nothing, and a token with a colon is an IPv6 literal or
// nothing. Hostname is preferred over Servername.
func ParseHost(raw string) (Host, error) {
	if len(raw) == 0 {
		return nil, parseError(Empty)
	}
	if isIPv4Candidate(raw) {
		addr, err := ParseIpv4Addr(raw)
		if err != nil {
			return nil, err
		}
		return addr, nil
	}
	if strings.IndexByte(raw, ':') != -1 {
		addr, err := ParseIpv6Addr(raw)
		if err != nil {
			return nil, err
		}
		return addr, nil
	}
	if hostname, err := ParseHostname(raw); err == nil {
		return hostname, nil
	}
	if isLooseServername(raw) {
		return Servername{name: raw}, nil
	}
	return nil, parseError(InvalidHost)
}

// MustParseHost is like ParseHost but panics on error.
func MustParseHost(raw string) Host {
	host, err := ParseHost(raw)
	if err != nil {
		panic(fmt.Sprintf("irctypes.MustParseHost(%q): %v", raw, err))
	}
	return host
}

// ParseIpv4Addr accepts exactly four decimal octets without leading zeros.
func ParseIpv4Addr(raw string) (Ipv4Addr, error) {
	if len(raw) == 0 {
		return Ipv4Addr{}, parseError(Empty)
	}
	if !isIPv4Candidate(raw) || !govalidator.IsIPv4(raw) {
		return Ipv4Addr{}, parseError(InvalidHost)
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil || !addr.Is4() {
		return Ipv4Addr{}, parseError(InvalidHost)
	}
	return Ipv4Addr{raw: raw, addr: addr}, nil
}

// ParseIpv6Addr accepts colon-hex literals with at most one "::" and an
// optional dotted IPv4 tail. Zones are rejected.
func ParseIpv6Addr(raw string) (Ipv6Addr, error) {
	if len(raw) == 0 {
		return Ipv6Addr{}, parseError(Empty)
	}
	if !govalidator.IsIPv6(raw) {
		return Ipv6Addr{}, parseError(InvalidHost)
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil || addr.Zone() != "" {
		return Ipv6Addr{}, parseError(InvalidHost)
	}
	return Ipv6Addr{raw: raw, addr: addr}, nil
}

// ParseHostname validates raw as dot-separated labels of letters, digits
// and interior hyphens.
func ParseHostname(raw string) (Hostname, error) {
	if len(raw) == 0 {
		return Hostname{}, parseError(Empty)
	}
	if len(raw) > maxHostnameLen {
		return Hostname{}, parseError(TooLong)
	}
	if isIPv4Candidate(raw) {
		return Hostname{}, parseError(InvalidHost)
	}
	for _, label := range strings.Split(raw, ".") {
		if !validLabel(label) {
			return Hostname{}, parseError(InvalidHost)
		}
	}
	return Hostname{name: raw}, nil
}

// ParseServername is ParseHost for contexts where only a server can appear:
// address literals are rejected and the looser grammar is always allowed.
func ParseServername(raw string) (Servername, error) {
	if len(raw) == 0 {
		return Servername{}, parseError(Empty)
	}
	if len(raw) > maxHostnameLen {
		return Servername{}, parseError(TooLong)
	}
	if isIPv4Candidate(raw) || strings.IndexByte(raw, ':') != -1 {
		return Servername{}, parseError(InvalidHost)
	}
	if _, err := ParseHostname(raw); err == nil || isLooseServername(raw) {
		return Servername{name: raw}, nil
	}
	return Servername{}, parseError(InvalidHost)
}

// MustParseServername is like ParseServername but panics on error.
func MustParseServername(raw string) Servername {
	server, err := ParseServername(raw)
	if err != nil {
		panic(fmt.Sprintf("irctypes.MustParseServername(%q): %v", raw, err))
	}
	return server
}

func validLabel(label string) bool {
	if len(label) == 0 || len(label) > maxLabelLen {
		return false
	}
	last := len(label) - 1
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case isLetter(c), isDigit(c):
		case c == '-' && i != 0 && i != last:
		default:
			return false
		}
	}
	return true
}

// isIPv4Candidate reports whether raw looks numeric enough that only the
// IPv4 grammar may claim it.
func isIPv4Candidate(raw string) bool {
	if len(raw) == 0 {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] != '.' && !isDigit(raw[i]) {
			return false
		}
	}
	return true
}

func isLooseServername(raw string) bool {
	return len(raw) <= maxHostnameLen && !isIPv4Candidate(raw) && govalidator.IsDNSName(raw)
}
