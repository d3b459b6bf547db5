// Copyright (c) 2026 The crikey authors
// portions written by Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package client

import (
	"github.com/goshuirc/eventmgr"

	"github.com/goshuirc/crikey/irctypes"
)

func pingHandler(event string, info eventmgr.InfoMap) {
	c := info["client"].(*Client)
	c.Send("PONG", info["params"].([]string)...)
}

// welcomeHandler sets the nick to the first parameter of the 001 message.
// This ensures that when we connect to IRCds that silently truncate the
// nickname, we keep the correct one.
func welcomeHandler(event string, info eventmgr.InfoMap) {
	c := info["client"].(*Client)
	c.registered = true

	params := info["params"].([]string)
	if len(params) > 0 {
		if nick, err := irctypes.ParseNickname(params[0], c.limits); err == nil {
			c.nick = nick
		} else {
			c.Log.Logf("server assigned an invalid nickname %q: %v", params[0], err)
		}
	}

	for _, channel := range c.reg.channels {
		c.Join(channel, irctypes.Key{})
	}
}

func featuresHandler(event string, info eventmgr.InfoMap) {
	c := info["client"].(*Client)

	// remove first and last params
	params := info["params"].([]string)
	if len(params) < 3 {
		return
	}
	tokens := params[1 : len(params)-1]

	c.features.Parse(tokens...)
	c.limits = c.limits.ApplyISupport(tokens...)
}

// nicknameInUseHandler appends '_' to the rejected nick while registering,
// for as long as the result still fits NICKLEN.
func nicknameInUseHandler(event string, info eventmgr.InfoMap) {
	c := info["client"].(*Client)
	if c.registered {
		return
	}

	rejected := c.nick.String()
	if params := info["params"].([]string); len(params) > 1 {
		rejected = params[1]
	}
	nick, err := irctypes.ParseNickname(rejected+"_", c.limits)
	if err != nil {
		c.Log.Logf("nickname %s is in use and no fallback fits: %v", rejected, err)
		return
	}
	c.nick = nick
	c.Send("NICK", nick.String())
}

func errorHandler(event string, info eventmgr.InfoMap) {
	c := info["client"].(*Client)
	params := info["params"].([]string)
	if len(params) > 0 {
		c.Log.Logf("server error: %s", params[len(params)-1])
	}
	c.quitting = true
}
