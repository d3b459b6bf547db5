// Copyright (c) 2026 The crikey authors
// released under the ISC license

package irctypes

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v2"
)

const msgToTests = `
# message target resolution tests
#
# kind is one of nickname, channel, userhost, nickserver, mask
# error is the expected error kind, if any

tests:
  - source: "alice"
    kind: nickname
  - source: "[away]"
    kind: nickname
  - source: "#general"
    kind: channel
  - source: "!12345room"
    kind: channel
  - source: "&local"
    kind: channel
  - source: "bob@irc.example.net"
    kind: userhost
  - source: "~ag@127.0.0.1"
    kind: userhost
  - source: "pjohnson@::1"
    kind: userhost
  - source: "bob@ircbot_default"
    kind: userhost
  - source: "$*.fi"
    kind: mask
  - source: "$irc.example.net"
    kind: mask

  # propagated errors
  - source: "$*"
    error: invalid mask
  - source: "$*..fi"
    error: invalid mask
  - source: "$*.-irc.fi"
    error: invalid mask
  - source: "$irc*-.fi"
    error: invalid mask
  - source: "#bad chan"
    error: invalid character
  - source: "!abc"
    error: invalid character

  # nothing matched
  - source: "9lives"
    error: unresolved target
  - source: "*.example.net"
    error: unresolved target
  - source: "bob@"
    error: unresolved target
  - source: "@irc.example.net"
    error: unresolved target
  - source: "bob@256.1.1.1"
    error: unresolved target
  - source: "averyveryverylongnick"
    error: unresolved target
`

type msgToTest struct {
	Source string
	Kind   string
	Error  string
}

type msgToTestFile struct {
	Tests []msgToTest
}

func msgToKind(to MsgTo) string {
	switch to.(type) {
	case MsgToNickname:
		return "nickname"
	case MsgToChannel:
		return "channel"
	case MsgToUserHost:
		return "userhost"
	case MsgToNickServer:
		return "nickserver"
	case MsgToMask:
		return "mask"
	}
	return "unknown"
}

func TestParseMsgTo(t *testing.T) {
	var tF msgToTestFile
	if err := yaml.Unmarshal([]byte(msgToTests), &tF); err != nil {
		t.Fatalf("could not load target test file [%q]", err.Error())
	}
	if len(tF.Tests) == 0 {
		t.Fatal("no target tests loaded")
	}

	for _, test := range tF.Tests {
		to, err := ParseMsgTo(test.Source, Limits{})
		if test.Error != "" {
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("For %q expected %s, got %v", test.Source, test.Error, err)
			} else if pe.Kind.String() != test.Error {
				t.Errorf("For %q expected %s, got %s", test.Source, test.Error, pe.Kind)
			}
			continue
		}
		if err != nil {
			t.Errorf("could not parse target [%s] got [%s]", test.Source, err.Error())
			continue
		}
		if kind := msgToKind(to); kind != test.Kind {
			t.Errorf("For %q expected %s, got %s", test.Source, test.Kind, kind)
		}

		assertEqual(to.String(), test.Source)
		again, err := ParseMsgTo(to.String(), Limits{})
		if err != nil {
			t.Errorf("reparse of %q failed: %v", test.Source, err)
		}
		assertEqual(again, to)
	}
}

func TestParseMsgToPayloads(t *testing.T) {
	to := MustParseMsgTo("bob@irc.example.net")
	userHost, ok := to.(MsgToUserHost)
	if !ok {
		t.Fatalf("expected MsgToUserHost, got %T", to)
	}
	assertEqual(userHost.User, MustParseUser("bob"))
	assertEqual(userHost.Host, MustParseHost("irc.example.net"))

	channel := MustParseMsgTo("#general").(MsgToChannel).Channel
	assertEqual(channel.Type(), Standard)
	assertEqual(channel.Name(), "general")

	nick := MustParseMsgTo("alice").(MsgToNickname).Nickname
	assertEqual(nick, MustParseNickname("alice"))
}

func TestParseMsgToNickServer(t *testing.T) {
	// with USERLEN too small for the left side, only nickname@servername fits
	limits := Limits{UserLen: 3}
	to, err := ParseMsgTo("alice@irc.example.net", limits)
	if err != nil {
		t.Fatal(err)
	}
	nickServer, ok := to.(MsgToNickServer)
	if !ok {
		t.Fatalf("expected MsgToNickServer, got %T", to)
	}
	assertEqual(nickServer.Nickname.String(), "alice")
	assertEqual(nickServer.Servername, MustParseServername("irc.example.net"))
	assertEqual(to.String(), "alice@irc.example.net")

	// but user@host still wins when the user fits
	to, err = ParseMsgTo("bob@irc.example.net", limits)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := to.(MsgToUserHost); !ok {
		t.Errorf("expected MsgToUserHost, got %T", to)
	}
}

func TestParseMsgToChanTypes(t *testing.T) {
	// a server without safe channels: "!" is not a sigil, and not a nickname
	limits := Limits{ChanTypes: "#&"}
	_, err := ParseMsgTo("+modeless", limits)
	assertKind(t, "+modeless", err, UnresolvedTarget)

	if _, err := ParseMsgTo("&local", limits); err != nil {
		t.Error("& should still be a channel:", err)
	}
}

func TestParseMsgTarget(t *testing.T) {
	target, err := ParseMsgTarget("alice,#general,bob@irc.example.net,$*.fi", Limits{})
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(len(target), 4)
	assertEqual(msgToKind(target[0]), "nickname")
	assertEqual(msgToKind(target[1]), "channel")
	assertEqual(msgToKind(target[2]), "userhost")
	assertEqual(msgToKind(target[3]), "mask")
	assertEqual(target.String(), "alice,#general,bob@irc.example.net,$*.fi")

	again, err := ParseMsgTarget(target.String(), Limits{})
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(again, target)

	_, err = ParseMsgTarget("alice,,bob", Limits{})
	assertKind(t, "alice,,bob", err, Empty)

	_, err = ParseMsgTarget("alice,9lives", Limits{})
	assertKind(t, "alice,9lives", err, UnresolvedTarget)

	text, _ := MustParseMsgTarget("alice,#general").MarshalText()
	assertEqual(string(text), "alice,#general")
}
