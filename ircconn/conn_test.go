// Copyright (c) 2026 The crikey authors
// released under the ISC license

package ircconn

import (
	"bufio"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"reflect"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/goshuirc/crikey/ircreader"
)

func assertEqual(found, expected interface{}) {
	if !reflect.DeepEqual(found, expected) {
		panic(fmt.Sprintf("expected %#v, found %#v", expected, found))
	}
}

type testLogger struct {
	lines []string
}

func (l *testLogger) Log(v ...interface{}) {
	l.lines = append(l.lines, strings.TrimSpace(fmt.Sprintln(v...)))
}

func (l *testLogger) Logf(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

// pollLine polls until a line arrives, since a single Poll may time out
// before the peer's data does.
func pollLine(t *testing.T, conn *Connection) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		line, ok, err := conn.Poll()
		if err != nil {
			t.Fatalf("unexpected poll error: %v", err)
		}
		if ok {
			return line
		}
	}
	t.Fatal("timed out waiting for a line")
	return ""
}

func pollError(t *testing.T, conn *Connection) error {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		line, ok, err := conn.Poll()
		if err != nil {
			return err
		}
		if ok {
			t.Fatalf("expected an error, got line %q", line)
		}
	}
	t.Fatal("timed out waiting for an error")
	return nil
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { listener.Close() })
	return listener
}

func TestPollAndSend(t *testing.T) {
	listener := listen(t)

	accepted := make(chan net.Conn, 1)
	go func() {
		server, err := listener.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- server
	}()

	conn, err := Dial(context.Background(), listener.Addr().String(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	server := <-accepted
	if server == nil {
		t.Fatal("accept failed")
	}
	defer server.Close()

	// nothing has arrived yet
	line, ok, err := conn.Poll()
	assertEqual(line, "")
	assertEqual(ok, false)
	assertEqual(err, nil)

	fmt.Fprint(server, "PING :abc\r\nPONG\r\n")
	assertEqual(pollLine(t, conn), "PING :abc")
	assertEqual(pollLine(t, conn), "PONG")

	_, ok, err = conn.Poll()
	assertEqual(ok, false)
	assertEqual(err, nil)

	reader := bufio.NewReader(server)
	if err := conn.SendCommandRaw("NICK coolguy"); err != nil {
		t.Fatal(err)
	}
	message, _ := reader.ReadString('\n')
	assertEqual(message, "NICK coolguy\r\n")

	// an existing terminator is not doubled
	if err := conn.SendCommandRaw("USER c 0 * :crikey\r\n"); err != nil {
		t.Fatal(err)
	}
	message, _ = reader.ReadString('\n')
	assertEqual(message, "USER c 0 * :crikey\r\n")
}

func TestBufferedLinesNeedNoRead(t *testing.T) {
	client, server := net.Pipe()
	conn := New(client)

	go func() {
		server.Write([]byte("PING :abc\r\nPONG\r\n"))
		server.Close()
	}()

	assertEqual(pollLine(t, conn), "PING :abc")
	// the peer is gone, but the second line is still buffered
	assertEqual(pollLine(t, conn), "PONG")

	err := pollError(t, conn)
	if !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("expected ErrConnectionClosed, got %v", err)
	}
	assertEqual(conn.Closed(), true)

	err = conn.SendCommandRaw("QUIT")
	if !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("expected ErrConnectionClosed, got %v", err)
	}
}

func TestInvalidLine(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	conn := New(client)
	defer conn.Close()

	for _, text := range []string{"PRIVMSG #a :one\r\nQUIT", "PRIVMSG #a :one\rtwo", "\nQUIT"} {
		err := conn.SendCommandRaw(text)
		if !errors.Is(err, ErrInvalidLine) {
			t.Errorf("For %q expected ErrInvalidLine, got %v", text, err)
		}
	}
}

func TestClose(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	conn := New(client)

	assertEqual(conn.Close(), nil)
	assertEqual(conn.Close(), nil)
	assertEqual(conn.Closed(), true)

	_, ok, err := conn.Poll()
	assertEqual(ok, false)
	if !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("expected ErrConnectionClosed, got %v", err)
	}
	if err := conn.SendCommandRaw("PING x"); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("expected ErrConnectionClosed, got %v", err)
	}
}

// shortWriteConn accepts at most three bytes per Write.
type shortWriteConn struct {
	net.Conn
	writes int
}

func (c *shortWriteConn) Write(b []byte) (int, error) {
	c.writes++
	return c.Conn.Write(b[:min(len(b), 3)])
}

func TestShortWrites(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	socket := &shortWriteConn{Conn: client}
	conn := New(socket)
	defer conn.Close()

	received := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(server).ReadString('\n')
		received <- line
	}()

	if err := conn.SendCommandRaw("PRIVMSG #general :hello there"); err != nil {
		t.Fatal(err)
	}
	select {
	case line := <-received:
		assertEqual(line, "PRIVMSG #general :hello there\r\n")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the line")
	}
	if socket.writes < 2 {
		t.Errorf("expected the line to take several writes, got %d", socket.writes)
	}
}

// brokenConn fails every read and write with the given errno.
type brokenConn struct {
	net.Conn
	errno syscall.Errno
}

func (c *brokenConn) Read(b []byte) (int, error) {
	return 0, &net.OpError{Op: "read", Net: "tcp", Err: os.NewSyscallError("read", c.errno)}
}

func (c *brokenConn) Write(b []byte) (int, error) {
	return 0, &net.OpError{Op: "write", Net: "tcp", Err: os.NewSyscallError("write", c.errno)}
}

func TestPeerResetIsClosed(t *testing.T) {
	for _, errno := range []syscall.Errno{syscall.ECONNRESET, syscall.ECONNABORTED, syscall.EPIPE} {
		client, server := net.Pipe()
		conn := New(&brokenConn{Conn: client, errno: errno}, LoggerOption(&testLogger{}))

		_, ok, err := conn.Poll()
		assertEqual(ok, false)
		if !errors.Is(err, ErrConnectionClosed) {
			t.Error("For", errno, "expected ErrConnectionClosed from Poll, got", err)
		}
		assertEqual(conn.Closed(), true)

		conn = New(&brokenConn{Conn: client, errno: errno}, LoggerOption(&testLogger{}))
		err = conn.SendCommandRaw("QUIT")
		if !errors.Is(err, ErrConnectionClosed) {
			t.Error("For", errno, "expected ErrConnectionClosed from SendCommandRaw, got", err)
		}

		client.Close()
		server.Close()
	}
}

func TestMaxLineLen(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	conn := New(client, MaxLineLenOption(512))
	defer conn.Close()

	go server.Write([]byte(strings.Repeat("a", 2048)))

	err := pollError(t, conn)
	if !errors.Is(err, ircreader.ErrReadQ) {
		t.Errorf("expected ErrReadQ, got %v", err)
	}
}

func TestDebugTraces(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	var logger testLogger
	conn := New(client, LoggerOption(&logger), DebugOption(true), PollTimeoutOption(50*time.Millisecond))
	defer conn.Close()

	go func() {
		reader := bufio.NewReader(server)
		reader.ReadString('\n')
		server.Write([]byte(":example.com 001 dan :Welcome\r\n"))
	}()

	if err := conn.SendCommandRaw("NICK dan"); err != nil {
		t.Fatal(err)
	}
	assertEqual(pollLine(t, conn), ":example.com 001 dan :Welcome")
	assertEqual(logger.lines, []string{"--> NICK dan", "<-- :example.com 001 dan :Welcome"})
}

func TestTLSConnection(t *testing.T) {
	// generate a test certificate to use
	priv, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)

	notBefore := time.Now().Add(-1 * time.Hour * 30) // valid 30 hours ago
	notAfter := notBefore.Add(time.Hour * 90)        // for 90 hours

	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, _ := rand.Int(rand.Reader, serialNumberLimit)

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"crikey Co"},
		},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	template.IPAddresses = append(template.IPAddresses, net.ParseIP("127.0.0.1"))
	template.DNSNames = append(template.DNSNames, "localhost")

	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		t.Fatal(err)
	}

	c := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: derBytes})
	b, _ := x509.MarshalECPrivateKey(priv)
	k := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: b})

	listenerKeyPair, err := tls.X509KeyPair(c, k)
	if err != nil {
		t.Fatal(err)
	}
	listener, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: []tls.Certificate{listenerKeyPair}})
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()

	go func() {
		server, err := listener.Accept()
		if err != nil {
			return
		}
		defer server.Close()
		reader := bufio.NewReader(server)
		message, _ := reader.ReadString('\n')
		if message == "PING :tls\r\n" {
			server.Write([]byte("PONG :tls\r\n"))
		}
		// wait for the client to hang up
		reader.ReadString('\n')
	}()

	clientTLSCertPool := x509.NewCertPool()
	clientTLSCertPool.AppendCertsFromPEM(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := Dial(ctx, listener.Addr().String(), &tls.Config{RootCAs: clientTLSCertPool, ServerName: "localhost"})
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.SendCommandRaw("PING :tls"); err != nil {
		t.Fatal(err)
	}
	assertEqual(pollLine(t, conn), "PONG :tls")
}
