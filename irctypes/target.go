// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import (
	"fmt"
	"strings"
)

// MsgTo is a single PRIVMSG/NOTICE destination. It is one of
// MsgToNickname, MsgToChannel, MsgToUserHost, MsgToNickServer or MsgToMask.
type MsgTo interface {
	String() string
	isMsgTo()
}

// MsgToNickname addresses a user by nickname.
type MsgToNickname struct {
	Nickname Nickname
}

// MsgToChannel addresses a channel.
type MsgToChannel struct {
	Channel Channel
}

// MsgToUserHost addresses user@host.
type MsgToUserHost struct {
	User User
	Host Host
}

// MsgToNickServer addresses nickname@servername.
type MsgToNickServer struct {
	Nickname   Nickname
	Servername Servername
}

// MsgToMask broadcasts to every user matching a target mask.
type MsgToMask struct {
	Mask TargetMask
}

func (MsgToNickname) isMsgTo()   {}
func (MsgToChannel) isMsgTo()    {}
func (MsgToUserHost) isMsgTo()   {}
func (MsgToNickServer) isMsgTo() {}
func (MsgToMask) isMsgTo()       {}

func (t MsgToNickname) String() string { return t.Nickname.String() }
func (t MsgToChannel) String() string  { return t.Channel.String() }
func (t MsgToMask) String() string     { return t.Mask.String() }

func (t MsgToUserHost) String() string {
	if t.Host == nil {
		return t.User.String()
	}
	return t.User.String() + "@" + t.Host.String()
}

func (t MsgToNickServer) String() string {
	return t.Nickname.String() + "@" + t.Servername.String()
}

// ParseMsgTo classifies one destination token. Sigils and separators are
// checked before any charset, because the user, nickname and mask charsets
// overlap:
//
//  1. "$..." is a server mask
//  2. a channel sigil from limits.ChanTypes makes a channel
//  3. "left@right" is user@host, failing that nickname@servername
//  4. anything else must be a nickname
//
// Errors from steps 1 and 2 are returned as is; a token that falls through
// every step fails with UnresolvedTarget.
func ParseMsgTo(raw string, limits Limits) (MsgTo, error) {
	if len(raw) == 0 {
		return nil, parseError(Empty)
	}

	if raw[0] == '$' {
		mask, err := ParseTargetMask(raw)
		if err != nil {
			return nil, err
		}
		return MsgToMask{Mask: mask}, nil
	}

	if limits.IsChannelSigil(raw[0]) {
		channel, err := ParseChannel(raw, limits)
		if err != nil {
			return nil, err
		}
		return MsgToChannel{Channel: channel}, nil
	}

	if at := strings.IndexByte(raw, '@'); at != -1 {
		left, right := raw[:at], raw[at+1:]
		if target, ok := parseUserHost(left, right, limits); ok {
			return target, nil
		}
		if target, ok := parseNickServer(left, right, limits); ok {
			return target, nil
		}
	}

	if nick, err := ParseNickname(raw, limits); err == nil {
		return MsgToNickname{Nickname: nick}, nil
	}
	return nil, parseError(UnresolvedTarget)
}

func parseUserHost(left, right string, limits Limits) (MsgTo, bool) {
	user, err := ParseUser(left, limits)
	if err != nil {
		return nil, false
	}
	host, err := ParseHost(right)
	if err != nil {
		return nil, false
	}
	return MsgToUserHost{User: user, Host: host}, true
}

func parseNickServer(left, right string, limits Limits) (MsgTo, bool) {
	nick, err := ParseNickname(left, limits)
	if err != nil {
		return nil, false
	}
	server, err := ParseServername(right)
	if err != nil {
		return nil, false
	}
	return MsgToNickServer{Nickname: nick, Servername: server}, true
}

// MustParseMsgTo is like ParseMsgTo with default limits but panics on error.
func MustParseMsgTo(raw string) MsgTo {
	target, err := ParseMsgTo(raw, Limits{})
	if err != nil {
		panic(fmt.Sprintf("irctypes.MustParseMsgTo(%q): %v", raw, err))
	}
	return target
}

// MsgTarget is the comma-separated target list of PRIVMSG and NOTICE.
type MsgTarget []MsgTo

// ParseMsgTarget splits raw on commas and resolves each element with
// ParseMsgTo. The first failing element's error is returned.
func ParseMsgTarget(raw string, limits Limits) (MsgTarget, error) {
	if len(raw) == 0 {
		return nil, parseError(Empty)
	}
	parts := strings.Split(raw, ",")
	target := make(MsgTarget, 0, len(parts))
	for _, part := range parts {
		to, err := ParseMsgTo(part, limits)
		if err != nil {
			return nil, err
		}
		target = append(target, to)
	}
	return target, nil
}

// MustParseMsgTarget is like ParseMsgTarget with default limits but panics on error.
func MustParseMsgTarget(raw string) MsgTarget {
	target, err := ParseMsgTarget(raw, Limits{})
	if err != nil {
		panic(fmt.Sprintf("irctypes.MustParseMsgTarget(%q): %v", raw, err))
	}
	return target
}

func (t MsgTarget) String() string {
	parts := make([]string, len(t))
	for i, to := range t {
		parts[i] = to.String()
	}
	return strings.Join(parts, ",")
}

func (t MsgTarget) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
