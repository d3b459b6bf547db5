// Copyright (c) 2026 The crikey authors
// released under the ISC license

// Package ircreader buffers a byte stream and splits it into IRC lines.
package ircreader

import (
	"bytes"
	"errors"
	"io"
)

var (
	// ErrReadQ indicates that a line exceeded the maximum buffer size
	// without a terminator.
	ErrReadQ = errors.New("readQ exceeded (read too many bytes without terminating newline)")
)

const (
	defaultInitialSize = 1024
	defaultMaxSize     = 512 + 8191
)

// Reader is a growable line buffer. Lines end at '\n'; a preceding '\r' is
// dropped. The returned slices alias the buffer and are only valid until
// the next call on the Reader.
type Reader struct {
	conn io.Reader

	initialSize int
	maxSize     int

	buf   []byte
	start int // first unconsumed byte
	end   int // end of buffered data
	eof   bool
}

// NewIRCReader returns a Reader over conn with the default sizes.
func NewIRCReader(conn io.Reader) *Reader {
	var r Reader
	r.Initialize(conn, defaultInitialSize, defaultMaxSize)
	return &r
}

// Initialize (re)sets the reader. maxSize bounds a single line, terminator
// included.
func (cc *Reader) Initialize(conn io.Reader, initialSize, maxSize int) {
	if initialSize <= 0 {
		initialSize = defaultInitialSize
	}
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	if initialSize > maxSize {
		initialSize = maxSize
	}
	cc.conn = conn
	cc.initialSize = initialSize
	cc.maxSize = maxSize
	cc.buf = nil
	cc.start = 0
	cc.end = 0
	cc.eof = false
}

// BufferedLine returns the next complete line if one is already buffered.
// It never reads from the underlying stream.
func (cc *Reader) BufferedLine() (line []byte, ok bool) {
	idx := bytes.IndexByte(cc.buf[cc.start:cc.end], '\n')
	if idx == -1 {
		return nil, false
	}
	line = cc.buf[cc.start : cc.start+idx]
	cc.start += idx + 1
	return bytes.TrimSuffix(line, []byte{'\r'}), true
}

// Buffered returns the number of bytes waiting for a terminator.
func (cc *Reader) Buffered() int {
	return cc.end - cc.start
}

// Fill performs exactly one Read on the underlying stream, appending
// whatever it returns. Errors from the stream are passed through, except
// that a full buffer with no terminator in it yields ErrReadQ.
func (cc *Reader) Fill() error {
	if cc.eof {
		return io.EOF
	}

	if cc.start > 0 {
		n := copy(cc.buf, cc.buf[cc.start:cc.end])
		cc.start = 0
		cc.end = n
	}

	if cc.end == len(cc.buf) {
		if len(cc.buf) >= cc.maxSize {
			return ErrReadQ
		}
		newSize := len(cc.buf) * 2
		if newSize == 0 {
			newSize = cc.initialSize
		}
		if newSize > cc.maxSize {
			newSize = cc.maxSize
		}
		newBuf := make([]byte, newSize)
		copy(newBuf, cc.buf[:cc.end])
		cc.buf = newBuf
	}

	n, err := cc.conn.Read(cc.buf[cc.end:])
	cc.end += n
	if err == io.EOF {
		cc.eof = true
	}
	return err
}

// ReadLine blocks until a complete line is available. It returns io.EOF
// once the stream ends; an unterminated tail is discarded.
func (cc *Reader) ReadLine() ([]byte, error) {
	for {
		if line, ok := cc.BufferedLine(); ok {
			return line, nil
		}
		if err := cc.Fill(); err != nil {
			if line, ok := cc.BufferedLine(); ok {
				return line, nil
			}
			return nil, err
		}
	}
}
