// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import (
	"strconv"
	"strings"

	"github.com/goshuirc/crikey/ircmap"
)

const (
	// DefaultNickLen is the historical RFC 1459 NICKLEN.
	DefaultNickLen = 9
	// DefaultChannelLen is the RFC 2812 CHANNELLEN.
	DefaultChannelLen = 50
	// DefaultKeyLen is the RFC 2812 KEYLEN.
	DefaultKeyLen = 23
	// DefaultChanTypes lists every sigil the grammar knows about.
	DefaultChanTypes = "#&+!"
	// DefaultCaseMapping is what servers assume when CASEMAPPING is absent.
	DefaultCaseMapping = "rfc1459"
)

// Limits carries the server-dependent parameters of the grammar. Servers
// advertise them in RPL_ISUPPORT; ApplyISupport folds those tokens in.
//
// A zero field means "use the default", so Limits{} is a usable value.
// UserLen is the exception: zero leaves usernames unbounded.
type Limits struct {
	NickLen     int    `yaml:"nicklen"`
	ChannelLen  int    `yaml:"channellen"`
	KeyLen      int    `yaml:"keylen"`
	UserLen     int    `yaml:"userlen"`
	ChanTypes   string `yaml:"chantypes"`
	CaseMapping string `yaml:"casemapping"`
}

// DefaultLimits returns the historical limits with every field filled in.
func DefaultLimits() Limits {
	return Limits{
		NickLen:     DefaultNickLen,
		ChannelLen:  DefaultChannelLen,
		KeyLen:      DefaultKeyLen,
		ChanTypes:   DefaultChanTypes,
		CaseMapping: DefaultCaseMapping,
	}
}

func (l Limits) nickLen() int {
	if l.NickLen > 0 {
		return l.NickLen
	}
	return DefaultNickLen
}

func (l Limits) channelLen() int {
	if l.ChannelLen > 0 {
		return l.ChannelLen
	}
	return DefaultChannelLen
}

func (l Limits) keyLen() int {
	if l.KeyLen > 0 {
		return l.KeyLen
	}
	return DefaultKeyLen
}

func (l Limits) chanTypes() string {
	if l.ChanTypes != "" {
		return l.ChanTypes
	}
	return DefaultChanTypes
}

// IsChannelSigil reports whether c starts a channel name under these limits.
func (l Limits) IsChannelSigil(c byte) bool {
	if _, err := ParseChannelType(c); err != nil {
		return false
	}
	return strings.IndexByte(l.chanTypes(), c) != -1
}

// Mapping returns the casemapping named by CaseMapping. Unknown names fall
// back to rfc1459.
func (l Limits) Mapping() ircmap.MappingType {
	name := l.CaseMapping
	if name == "" {
		name = DefaultCaseMapping
	}
	mapping, err := ircmap.ParseMapping(name)
	if err != nil {
		return ircmap.RFC1459
	}
	return mapping
}

// ApplyISupport returns a copy of l updated from RPL_ISUPPORT tokens such as
// "NICKLEN=30" or "CHANTYPES=#&". Malformed values are ignored, and a
// negated token ("-NICKLEN") restores the default.
func (l Limits) ApplyISupport(tokens ...string) Limits {
	for _, token := range tokens {
		if strings.HasPrefix(token, "-") {
			switch strings.ToUpper(token[1:]) {
			case "NICKLEN":
				l.NickLen = 0
			case "CHANNELLEN":
				l.ChannelLen = 0
			case "KEYLEN":
				l.KeyLen = 0
			case "USERLEN":
				l.UserLen = 0
			case "CHANTYPES":
				l.ChanTypes = ""
			case "CASEMAPPING":
				l.CaseMapping = ""
			}
			continue
		}

		name, value, _ := strings.Cut(token, "=")
		switch strings.ToUpper(name) {
		case "NICKLEN":
			if num, ok := parseLength(value); ok {
				l.NickLen = num
			}
		case "CHANNELLEN":
			if num, ok := parseLength(value); ok {
				l.ChannelLen = num
			}
		case "KEYLEN":
			if num, ok := parseLength(value); ok {
				l.KeyLen = num
			}
		case "USERLEN":
			if num, ok := parseLength(value); ok {
				l.UserLen = num
			}
		case "CHANTYPES":
			if value != "" && validChanTypes(value) {
				l.ChanTypes = value
			}
		case "CASEMAPPING":
			if _, err := ircmap.ParseMapping(value); err == nil {
				l.CaseMapping = strings.ToLower(value)
			}
		}
	}
	return l
}

func parseLength(value string) (int, bool) {
	num, err := strconv.Atoi(value)
	if err != nil || num <= 0 {
		return 0, false
	}
	return num, true
}

func validChanTypes(value string) bool {
	for i := 0; i < len(value); i++ {
		if _, err := ParseChannelType(value[i]); err != nil {
			return false
		}
	}
	return true
}
