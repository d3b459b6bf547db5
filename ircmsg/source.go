// Copyright (c) 2026 The crikey authors
// portions written by Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package ircmsg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goshuirc/crikey/irctypes"
)

var (
	// ErrorNoSource indicates that the message carried no prefix.
	ErrorNoSource = errors.New("message has no source")
	// ErrorIllFormedSource indicates that the prefix is neither
	// nick[!user][@host] nor a servername.
	ErrorIllFormedSource = errors.New("did not receive a well-formed source")
)

// Source is the typed origin of a message: either a user, as
// nick[!user][@host], or a server.
type Source struct {
	Nickname irctypes.Nickname
	User     irctypes.User
	Host     irctypes.Host
	Server   irctypes.Servername
}

// IsServer reports whether the message came from a server.
func (s Source) IsServer() bool {
	return !s.Server.IsZero()
}

// String returns the canonical string representation of the source.
func (s Source) String() string {
	if s.IsServer() {
		return s.Server.String()
	}
	out := s.Nickname.String()
	if !s.User.IsZero() {
		out = fmt.Sprintf("%s!%s", out, s.User)
	}
	if s.Host != nil {
		out = fmt.Sprintf("%s@%s", out, s.Host)
	}
	return out
}

// ParseSource parses a message prefix. Nicknames are checked against limits.
func ParseSource(prefix string, limits irctypes.Limits) (source Source, err error) {
	if len(prefix) == 0 {
		return source, ErrorNoSource
	}

	rest := prefix
	hostStart := strings.IndexByte(rest, '@')
	userStart := strings.IndexByte(rest, '!')
	if hostStart == -1 && userStart == -1 {
		// a bare nickname never contains '.'
		if strings.IndexByte(rest, '.') == -1 {
			if source.Nickname, err = irctypes.ParseNickname(rest, limits); err == nil {
				return source, nil
			}
		}
		if source.Server, err = irctypes.ParseServername(rest); err != nil {
			return Source{}, fmt.Errorf("%w: %q: %w", ErrorIllFormedSource, prefix, err)
		}
		return source, nil
	}

	if hostStart != -1 {
		if source.Host, err = irctypes.ParseHost(rest[hostStart+1:]); err != nil {
			return Source{}, fmt.Errorf("%w: %q: %w", ErrorIllFormedSource, prefix, err)
		}
		rest = rest[:hostStart]
	}
	if userStart != -1 && userStart < len(rest) {
		if source.User, err = irctypes.ParseUser(rest[userStart+1:], limits); err != nil {
			return Source{}, fmt.Errorf("%w: %q: %w", ErrorIllFormedSource, prefix, err)
		}
		rest = rest[:userStart]
	}
	if source.Nickname, err = irctypes.ParseNickname(rest, limits); err != nil {
		return Source{}, fmt.Errorf("%w: %q: %w", ErrorIllFormedSource, prefix, err)
	}
	return source, nil
}

// Source returns the typed origin of the message.
func (msg *Message) Source(limits irctypes.Limits) (Source, error) {
	return ParseSource(msg.Prefix, limits)
}
