// Copyright (c) 2026 The crikey authors
// released under the ISC license

// Package ircconn turns a stream connection into a non-blocking source of
// IRC lines, suitable for a single-threaded polling loop.
package ircconn

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/go-log/log"

	"github.com/goshuirc/crikey/ircreader"
)

var (
	// ErrConnectionClosed is returned once the peer or the caller has closed
	// the connection.
	ErrConnectionClosed = errors.New("connection closed")
	// ErrInvalidLine is returned when an outgoing line contains CR or LF.
	ErrInvalidLine = errors.New("line contains CR or LF")
)

const (
	// DefaultPollTimeout bounds how long a single Poll waits for data.
	DefaultPollTimeout = 10 * time.Millisecond
	// DefaultMaxLineLen is the 512 byte message limit plus the 8191 byte
	// tag allowance.
	DefaultMaxLineLen = 512 + 8191

	initialBufferSize = 1024
)

// Options describes the options for a Connection.
type Options struct {
	Logger       log.Logger
	Debug        bool
	PollTimeout  time.Duration
	WriteTimeout time.Duration
	MaxLineLen   int
}

// Option allows a common way to set Options.
type Option func(opts *Options)

// LoggerOption sets the logger used for wire traces and errors.
func LoggerOption(logger log.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// DebugOption enables logging of every line sent and received.
func DebugOption(debug bool) Option {
	return func(opts *Options) {
		opts.Debug = debug
	}
}

// PollTimeoutOption sets the read deadline used by Poll.
func PollTimeoutOption(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.PollTimeout = timeout
	}
}

// WriteTimeoutOption sets a write deadline for SendCommandRaw. Zero means none.
func WriteTimeoutOption(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.WriteTimeout = timeout
	}
}

// MaxLineLenOption bounds the length of a received line.
func MaxLineLenOption(n int) Option {
	return func(opts *Options) {
		opts.MaxLineLen = n
	}
}

// Connection frames a byte stream into IRC lines. It is meant to be driven
// from a single polling loop and is not safe for concurrent use.
type Connection struct {
	Log   log.Logger
	Debug bool

	PollTimeout  time.Duration
	WriteTimeout time.Duration

	socket net.Conn
	reader ircreader.Reader
	closed bool // by Close
	eof    bool // by the peer
}

// New wraps an established connection.
func New(socket net.Conn, opts ...Option) *Connection {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = log.DefaultLogger
	}
	if options.PollTimeout <= 0 {
		options.PollTimeout = DefaultPollTimeout
	}
	if options.MaxLineLen <= 0 {
		options.MaxLineLen = DefaultMaxLineLen
	}

	conn := &Connection{
		Log:          options.Logger,
		Debug:        options.Debug,
		PollTimeout:  options.PollTimeout,
		WriteTimeout: options.WriteTimeout,
		socket:       socket,
	}
	// the terminator has to fit as well
	conn.reader.Initialize(socket, initialBufferSize, options.MaxLineLen+2)
	return conn
}

// Dial connects to address over TCP, and over TLS if tlsConfig is non-nil.
func Dial(ctx context.Context, address string, tlsConfig *tls.Config, opts ...Option) (*Connection, error) {
	var dialer net.Dialer
	socket, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}
	if tlsConfig == nil {
		return New(socket, opts...), nil
	}

	// see tls.DialWithDialer
	if tlsConfig.ServerName == "" && !tlsConfig.InsecureSkipVerify {
		tlsConfig = tlsConfig.Clone()
		host, _, err := net.SplitHostPort(address)
		if err == nil {
			tlsConfig.ServerName = host
		} else {
			tlsConfig.ServerName = address
		}
	}
	tlsSocket := tls.Client(socket, tlsConfig)
	if err := tlsSocket.HandshakeContext(ctx); err != nil {
		socket.Close()
		return nil, fmt.Errorf("tls handshake with %s: %w", address, err)
	}
	return New(tlsSocket, opts...), nil
}

// RemoteAddr returns the address of the peer.
func (c *Connection) RemoteAddr() net.Addr {
	return c.socket.RemoteAddr()
}

// SendCommandRaw writes one line, terminated with CRLF. A trailing line
// terminator on text is ignored; any other CR or LF is rejected.
func (c *Connection) SendCommandRaw(text string) error {
	if c.closed || c.eof {
		return ErrConnectionClosed
	}
	text = strings.TrimRight(text, "\r\n")
	if strings.ContainsAny(text, "\r\n") {
		return ErrInvalidLine
	}

	if c.Debug {
		c.Log.Logf("--> %s", text)
	}

	if c.WriteTimeout != 0 {
		c.socket.SetWriteDeadline(time.Now().Add(c.WriteTimeout))
		defer c.socket.SetWriteDeadline(time.Time{})
	}

	b := []byte(text + "\r\n")
	for len(b) > 0 {
		n, err := c.socket.Write(b)
		b = b[n:]
		if err != nil {
			return c.mapError(err)
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

// Poll returns at most one line. A line that is already buffered is returned
// without touching the socket; otherwise Poll performs a single read bounded
// by PollTimeout. ok is false when no complete line is available yet.
func (c *Connection) Poll() (line string, ok bool, err error) {
	if c.closed {
		return "", false, ErrConnectionClosed
	}
	if line, ok := c.bufferedLine(); ok {
		return line, true, nil
	}
	if c.eof {
		return "", false, ErrConnectionClosed
	}

	c.socket.SetReadDeadline(time.Now().Add(c.PollTimeout))
	fillErr := c.reader.Fill()

	// a read can deliver data and an error together
	if line, ok := c.bufferedLine(); ok {
		return line, true, nil
	}

	if fillErr == nil {
		return "", false, nil
	}
	var netErr net.Error
	if errors.As(fillErr, &netErr) && netErr.Timeout() {
		return "", false, nil
	}
	return "", false, c.mapError(fillErr)
}

func (c *Connection) bufferedLine() (string, bool) {
	lineBytes, ok := c.reader.BufferedLine()
	if !ok {
		return "", false
	}
	line := string(lineBytes)
	if c.Debug {
		c.Log.Logf("<-- %s", line)
	}
	return line, true
}

// isClosedError reports whether err means the peer has gone away.
func isClosedError(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE)
}

func (c *Connection) mapError(err error) error {
	if isClosedError(err) {
		if !c.eof {
			c.Log.Logf("connection to %s closed", c.socket.RemoteAddr())
		}
		c.eof = true
		return ErrConnectionClosed
	}
	return err
}

// Closed reports whether the connection has been closed by either side.
func (c *Connection) Closed() bool {
	return c.closed || c.eof
}

// Close closes the underlying connection. It is safe to call more than once.
func (c *Connection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.socket.Close()
}
