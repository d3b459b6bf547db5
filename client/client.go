// Copyright (c) 2026 The crikey authors
// portions written by Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package client

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/go-log/log"
	"github.com/goshuirc/eventmgr"

	"github.com/goshuirc/crikey/ircconn"
	"github.com/goshuirc/crikey/ircmsg"
	"github.com/goshuirc/crikey/irctypes"
)

var (
	// ErrorNotConnected indicates an operation that needs a live connection.
	ErrorNotConnected = errors.New("not connected")
	// ErrorAlreadyConnected indicates a second Connect on the same Client.
	ErrorAlreadyConnected = errors.New("already connected")
)

// Client is a connection to a single server. It is driven by Run, or by
// calling Step from the caller's own loop, and must only be used from that
// goroutine. Handlers run on it as well.
type Client struct {
	Log log.Logger

	config Config
	reg    registration

	conn       *ircconn.Connection
	limits     irctypes.Limits
	features   ServerFeatures
	nick       irctypes.Nickname
	registered bool
	quitting   bool

	eventsIn  eventmgr.EventManager
	eventsOut eventmgr.EventManager
}

// New returns a Client for config, with the default handlers attached.
func New(config Config) (*Client, error) {
	reg, err := config.validate()
	if err != nil {
		return nil, err
	}

	c := &Client{
		Log:      log.DefaultLogger,
		config:   config,
		reg:      reg,
		limits:   config.Limits,
		features: make(ServerFeatures),
	}

	c.RegisterEvent("in", "PING", pingHandler, -10)
	c.RegisterEvent("in", "RPL_WELCOME", welcomeHandler, -10)
	c.RegisterEvent("in", "RPL_ISUPPORT", featuresHandler, -10)
	c.RegisterEvent("in", "ERR_NICKNAMEINUSE", nicknameInUseHandler, -10)
	c.RegisterEvent("in", "ERROR", errorHandler, -10)

	return c, nil
}

// Connect dials the configured server and sends the registration.
func (c *Client) Connect(ctx context.Context) error {
	if c.conn != nil {
		return ErrorAlreadyConnected
	}

	var tlsConfig *tls.Config
	if c.config.TLS {
		tlsConfig = &tls.Config{InsecureSkipVerify: c.config.TLSInsecure}
	}
	conn, err := ircconn.Dial(ctx, c.config.Server, tlsConfig, c.connOptions()...)
	if err != nil {
		return err
	}
	c.attach(conn)
	return c.register()
}

// ConnectWith uses an established connection instead of dialing.
func (c *Client) ConnectWith(socket net.Conn) error {
	if c.conn != nil {
		return ErrorAlreadyConnected
	}
	c.attach(ircconn.New(socket, c.connOptions()...))
	return c.register()
}

func (c *Client) connOptions() []ircconn.Option {
	return []ircconn.Option{
		ircconn.LoggerOption(c.Log),
		ircconn.DebugOption(c.config.Debug),
	}
}

func (c *Client) attach(conn *ircconn.Connection) {
	c.conn = conn
	c.registered = false
	c.quitting = false
	c.limits = c.config.Limits
	c.features = make(ServerFeatures)
	c.Log.Logf("connected to %s", conn.RemoteAddr())
}

func (c *Client) register() error {
	if c.config.Password != "" {
		if err := c.Send("PASS", c.config.Password); err != nil {
			return err
		}
	}
	c.nick = c.reg.nick
	if err := c.Send("NICK", c.reg.nick.String()); err != nil {
		return err
	}
	return c.Send("USER", c.reg.user.String(), "0", "*", c.reg.realName)
}

// Step polls the connection once and dispatches at most one line. It
// reports whether a line was handled.
func (c *Client) Step() (bool, error) {
	if c.conn == nil {
		return false, ErrorNotConnected
	}
	line, ok, err := c.conn.Poll()
	if err != nil || !ok {
		return false, err
	}
	c.handleLine(line)
	return true, nil
}

// Run steps until the context ends or the connection closes. When the
// context ends it sends QUIT, closes the connection and returns ctx.Err().
// A connection closed after Quit is not an error.
func (c *Client) Run(ctx context.Context) error {
	if c.conn == nil {
		return ErrorNotConnected
	}

	timer := time.NewTimer(c.config.PollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if !c.quitting {
				c.Quit("")
			}
			c.Close()
			return ctx.Err()
		default:
		}

		handled, err := c.Step()
		if err != nil {
			if errors.Is(err, ircconn.ErrConnectionClosed) && c.quitting {
				return nil
			}
			c.Close()
			return err
		}
		if handled {
			continue
		}

		timer.Reset(c.config.PollInterval)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}

func (c *Client) handleLine(line string) {
	// ignore empty lines
	if len(line) < 1 {
		return
	}

	// dispatch raw
	rawInfo := eventmgr.NewInfoMap()
	rawInfo["client"] = c
	rawInfo["direction"] = "in"
	rawInfo["data"] = line
	c.eventsIn.Dispatch("raw", rawInfo)

	message, err := ircmsg.ParseLine(line)
	if err != nil {
		c.Log.Logf("could not parse line %q: %v", line, err)
		return
	}

	cmd := eventName(message.Command)
	info := eventmgr.NewInfoMap()
	info["client"] = c
	info["direction"] = "in"
	info["message"] = message
	info["tags"] = message.Tags
	info["prefix"] = message.Prefix
	info["command"] = cmd
	info["params"] = message.Params

	c.eventsIn.Dispatch(cmd, info)
	c.eventsIn.Dispatch("all", info)
}

// RegisterEvent registers a new handler for the given event.
//
// The standard directions are "in", "out" and "both".
//
// 'name' can either be the name of an event, "all", or "raw". Note that "all"
// will not catch "raw" events, but will catch all others. Known numerics are
// named as in Numerics.
func (c *Client) RegisterEvent(direction string, name string, handler eventmgr.HandlerFn, priority int) {
	if direction == "in" || direction == "both" {
		c.eventsIn.Attach(name, handler, priority)
	}
	if direction == "out" || direction == "both" {
		c.eventsOut.Attach(name, handler, priority)
	}
}

// Send sends an IRC message to the server. If the message cannot be converted
// to a raw IRC line, an error is returned.
func (c *Client) Send(command string, params ...string) error {
	if c.conn == nil {
		return ErrorNotConnected
	}
	msg := ircmsg.MakeMessage("", command, params...)
	line, err := msg.Line()
	if err != nil {
		return err
	}
	if err := c.conn.SendCommandRaw(line); err != nil {
		return err
	}

	// dispatch raw event
	info := eventmgr.NewInfoMap()
	info["client"] = c
	info["direction"] = "out"
	info["data"] = strings.TrimRight(line, "\r\n")
	c.eventsOut.Dispatch("raw", info)

	// dispatch real event
	info = eventmgr.NewInfoMap()
	info["client"] = c
	info["direction"] = "out"
	info["message"] = msg
	info["command"] = strings.ToUpper(command)
	info["params"] = params
	c.eventsOut.Dispatch(strings.ToUpper(command), info)
	c.eventsOut.Dispatch("all", info)

	return nil
}

// Privmsg sends text to every target in target.
func (c *Client) Privmsg(target irctypes.MsgTarget, text string) error {
	return c.Send("PRIVMSG", target.String(), text)
}

// Notice sends text to every target in target as a NOTICE.
func (c *Client) Notice(target irctypes.MsgTarget, text string) error {
	return c.Send("NOTICE", target.String(), text)
}

// Join joins channel, using key if it is not the zero Key.
func (c *Client) Join(channel irctypes.Channel, key irctypes.Key) error {
	if key.IsZero() {
		return c.Send("JOIN", channel.String())
	}
	return c.Send("JOIN", channel.String(), key.String())
}

// Part leaves channel.
func (c *Client) Part(channel irctypes.Channel, message string) error {
	if message == "" {
		return c.Send("PART", channel.String())
	}
	return c.Send("PART", channel.String(), message)
}

// Quit asks the server to close the connection.
func (c *Client) Quit(message string) error {
	c.quitting = true
	if message == "" {
		return c.Send("QUIT")
	}
	return c.Send("QUIT", message)
}

// Close closes the connection without a QUIT.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Nick returns the nickname the server currently knows us by.
func (c *Client) Nick() irctypes.Nickname {
	return c.nick
}

// Registered reports whether RPL_WELCOME has been received.
func (c *Client) Registered() bool {
	return c.registered
}

// Limits returns the identifier limits in effect, updated from RPL_ISUPPORT.
func (c *Client) Limits() irctypes.Limits {
	return c.limits
}

// Features returns the RPL_ISUPPORT tokens received so far.
func (c *Client) Features() ServerFeatures {
	return c.features
}

// ParseTarget validates raw as a message target under the current limits.
func (c *Client) ParseTarget(raw string) (irctypes.MsgTarget, error) {
	return irctypes.ParseMsgTarget(raw, c.limits)
}
