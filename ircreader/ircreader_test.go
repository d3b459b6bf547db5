// Copyright (c) 2020 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the MIT license

// Copyright (c) 2026 The crikey authors
// released under the ISC license

package ircreader

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"
)

// mockConn yields len(counts) lines, each consisting of counts[i] 'a'
// characters and a terminating '\n'
type mockConn struct {
	counts []int
}

func (c *mockConn) Read(b []byte) (n int, err error) {
	for len(b) > 0 {
		if len(c.counts) == 0 {
			return n, io.EOF
		}
		if c.counts[0] == 0 {
			b[0] = '\n'
			c.counts = c.counts[1:]
			b = b[1:]
			n += 1
			continue
		}
		size := min(c.counts[0], len(b))
		for i := 0; i < size; i++ {
			b[i] = 'a'
		}
		c.counts[0] -= size
		b = b[size:]
		n += size
	}
	return n, nil
}

func newMockConn(counts []int) *mockConn {
	cpCounts := make([]int, len(counts))
	copy(cpCounts, counts)
	return &mockConn{
		counts: cpCounts,
	}
}

func doLineReaderTest(counts []int, t *testing.T) {
	c := newMockConn(counts)
	r := NewIRCReader(c)
	var readCounts []int
	for {
		line, err := r.ReadLine()
		if err == nil {
			readCounts = append(readCounts, len(line))
		} else if err == io.EOF {
			break
		} else {
			panic(err)
		}
	}

	if !reflect.DeepEqual(counts, readCounts) {
		t.Errorf("expected %#v, got %#v", counts, readCounts)
	}
}

const (
	maxMockReaderLen     = 100
	maxMockReaderLineLen = 4096 + 511
)

func TestLineReader(t *testing.T) {
	counts := []int{44, 428, 3, 0, 200, 2000, 0, 4044, 33, 3, 2, 1, 0, 1, 2, 3, 48, 555}
	doLineReaderTest(counts, t)

	// fuzz
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 1000; i++ {
		countsLen := r.Intn(maxMockReaderLen) + 1
		counts := make([]int, countsLen)
		for i := 0; i < countsLen; i++ {
			counts[i] = r.Intn(maxMockReaderLineLen)
		}
		doLineReaderTest(counts, t)
	}
}

// mockConnLimits simulates the arrival of data via TCP;
// each Read() call will read from at most one of the slices
type mockConnLimits struct {
	reads [][]byte
}

func (c *mockConnLimits) Read(b []byte) (n int, err error) {
	if len(c.reads) == 0 {
		return n, io.EOF
	}
	readLen := min(len(c.reads[0]), len(b))
	copy(b[:readLen], c.reads[0][:readLen])
	c.reads[0] = c.reads[0][readLen:]
	if len(c.reads[0]) == 0 {
		c.reads = c.reads[1:]
	}
	return readLen, nil
}

func makeLine(length int, ending bool) (result []byte) {
	totalLen := length
	if ending {
		totalLen++
	}
	result = make([]byte, totalLen)
	for i := 0; i < length; i++ {
		result[i] = 'a'
	}
	if ending {
		result[len(result)-1] = '\n'
	}
	return
}

func assertEqual(found, expected interface{}) {
	if !reflect.DeepEqual(found, expected) {
		panic(fmt.Sprintf("expected %#v, found %#v", expected, found))
	}
}

func TestRegression(t *testing.T) {
	var c mockConnLimits
	// this read fills up the buffer with a terminated line:
	c.reads = append(c.reads, makeLine(4605, true))
	// this is a large, unterminated read:
	c.reads = append(c.reads, makeLine(4095, false))
	// this terminates the previous read, within the acceptable limit:
	c.reads = append(c.reads, makeLine(500, true))

	var cc Reader
	cc.Initialize(&c, 512, 4096+512)

	line, err := cc.ReadLine()
	assertEqual(len(line), 4605)
	assertEqual(err, nil)

	line, err = cc.ReadLine()
	assertEqual(len(line), 4595)
	assertEqual(err, nil)

	_, err = cc.ReadLine()
	assertEqual(err, io.EOF)
}

func TestCRLF(t *testing.T) {
	c := mockConnLimits{reads: [][]byte{
		[]byte("PING :abc\r\nPONG\r\n"),
		[]byte("NOTICE * :bare\n\r\n"),
	}}
	r := NewIRCReader(&c)

	for _, expected := range []string{"PING :abc", "PONG", "NOTICE * :bare", ""} {
		line, err := r.ReadLine()
		if err != nil {
			t.Fatal(err)
		}
		assertEqual(string(line), expected)
	}
	_, err := r.ReadLine()
	assertEqual(err, io.EOF)
}

func TestBufferedLine(t *testing.T) {
	c := mockConnLimits{reads: [][]byte{[]byte("PING :abc\r\nPONG\r\nPRIV")}}
	r := NewIRCReader(&c)

	if _, ok := r.BufferedLine(); ok {
		t.Fatal("nothing has been read yet")
	}
	if err := r.Fill(); err != nil {
		t.Fatal(err)
	}

	// one read, two complete lines
	line, ok := r.BufferedLine()
	assertEqual(ok, true)
	assertEqual(string(line), "PING :abc")
	line, ok = r.BufferedLine()
	assertEqual(ok, true)
	assertEqual(string(line), "PONG")
	_, ok = r.BufferedLine()
	assertEqual(ok, false)
	assertEqual(r.Buffered(), 4)
}

func TestPartialLineAtEOF(t *testing.T) {
	c := mockConnLimits{reads: [][]byte{[]byte("PING :abc\r\nPRIVMSG #chan :unterminated")}}
	r := NewIRCReader(&c)

	line, err := r.ReadLine()
	assertEqual(err, nil)
	assertEqual(string(line), "PING :abc")

	_, err = r.ReadLine()
	assertEqual(err, io.EOF)
	// and it stays that way
	_, err = r.ReadLine()
	assertEqual(err, io.EOF)
}

func TestReadQ(t *testing.T) {
	c := mockConnLimits{reads: [][]byte{[]byte(strings.Repeat("a", 600))}}
	var r Reader
	r.Initialize(&c, 128, 512)

	_, err := r.ReadLine()
	if !errors.Is(err, ErrReadQ) {
		t.Errorf("expected ErrReadQ, got %v", err)
	}
}
