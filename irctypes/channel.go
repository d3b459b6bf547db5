// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import (
	"fmt"

	"github.com/goshuirc/crikey/ircmap"
)

// ChannelType is the sigil that starts a channel name.
type ChannelType byte

const (
	// Standard channels ("#") are known to every server on the network.
	Standard ChannelType = '#'
	// Local channels ("&") exist on a single server.
	Local ChannelType = '&'
	// Modeless channels ("+") do not support channel modes.
	Modeless ChannelType = '+'
	// Safe channels ("!") carry a server-assigned ChannelID.
	Safe ChannelType = '!'
)

// ParseChannelType maps a sigil byte to its ChannelType.
func ParseChannelType(c byte) (ChannelType, error) {
	switch ChannelType(c) {
	case Standard, Local, Modeless, Safe:
		return ChannelType(c), nil
	}
	return 0, parseError(InvalidLeadingChar)
}

func (t ChannelType) String() string { return string(rune(t)) }

// ChannelIDLen is the fixed length of a safe channel's id.
const ChannelIDLen = 5

// ChannelID is the five character prefix of a safe channel's name.
type ChannelID struct {
	id string
}

// ParseChannelID validates raw as exactly five characters of A-Z0-9. A short
// id is reported as InvalidChar at the first missing position, with Char 0.
func ParseChannelID(raw string) (ChannelID, error) {
	if len(raw) == 0 {
		return ChannelID{}, parseError(Empty)
	}
	if len(raw) > ChannelIDLen {
		return ChannelID{}, parseError(TooLong)
	}
	for i, r := range raw {
		if !(('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')) {
			return ChannelID{}, invalidChar(i, r)
		}
	}
	if len(raw) < ChannelIDLen {
		return ChannelID{}, invalidChar(len(raw), 0)
	}
	return ChannelID{id: raw}, nil
}

func (id ChannelID) String() string { return id.id }

func (id ChannelID) IsZero() bool { return id.id == "" }

// Channel is a validated channel reference. For safe channels the id is
// split out of the name, so "!12345room" has ID "12345" and Name "room".
type Channel struct {
	typ  ChannelType
	id   ChannelID
	name string
}

// ParseChannel classifies raw by its sigil and validates the rest of it.
// limits.ChannelLen bounds the whole token, sigil included, and
// limits.ChanTypes lists the sigils the server accepts.
func ParseChannel(raw string, limits Limits) (Channel, error) {
	if len(raw) == 0 {
		return Channel{}, parseError(Empty)
	}
	if len(raw) > limits.channelLen() {
		return Channel{}, parseError(TooLong)
	}
	if !limits.IsChannelSigil(raw[0]) {
		return Channel{}, parseError(InvalidLeadingChar)
	}

	channel := Channel{typ: ChannelType(raw[0])}
	body := raw[1:]
	if err := validateChannelBody(body); err != nil {
		return Channel{}, shiftPosition(err, 1)
	}

	if channel.typ == Safe {
		if len(body) == 0 {
			return Channel{}, parseError(Empty)
		}
		idPart := body
		if len(idPart) > ChannelIDLen {
			idPart = idPart[:ChannelIDLen]
		}
		id, err := ParseChannelID(idPart)
		if err != nil {
			return Channel{}, shiftPosition(err, 1)
		}
		channel.id = id
		body = body[len(idPart):]
	}

	if len(body) == 0 {
		return Channel{}, parseError(Empty)
	}
	channel.name = body
	return channel, nil
}

// MustParseChannel is like ParseChannel with default limits but panics on error.
func MustParseChannel(raw string) Channel {
	channel, err := ParseChannel(raw, Limits{})
	if err != nil {
		panic(fmt.Sprintf("irctypes.MustParseChannel(%q): %v", raw, err))
	}
	return channel
}

func validateChannelBody(body string) error {
	for i, r := range body {
		switch r {
		case 0, '\a', '\r', '\n', ' ', ',', ':':
			return invalidChar(i, r)
		}
	}
	return nil
}

// Type returns the channel's sigil.
func (c Channel) Type() ChannelType { return c.typ }

// ID returns the safe channel id, if the channel has one.
func (c Channel) ID() (ChannelID, bool) { return c.id, !c.id.IsZero() }

// Name returns the channel name without sigil or id.
func (c Channel) Name() string { return c.name }

func (c Channel) IsZero() bool { return c.typ == 0 }

func (c Channel) String() string {
	if c.IsZero() {
		return ""
	}
	return string(rune(c.typ)) + c.id.id + c.name
}

// Equal compares two channels under the limits' casemapping.
func (c Channel) Equal(other Channel, limits Limits) bool {
	return ircmap.Equal(limits.Mapping(), c.String(), other.String())
}

func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Channel) UnmarshalText(data []byte) error {
	parsed, err := ParseChannel(string(data), Limits{})
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
