//go:build linux

package posixsock

import (
	"bytes"
	"crypto/rand"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewPairDatagramRoundTrip(t *testing.T) {
	a, b, err := NewPair(DomainUnix, TypeDatagram, 0, false)
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	payload := make([]byte, 512)
	_, err = rand.Read(payload)
	require.NoError(t, err)

	n, err := a.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	buf := make([]byte, 1024)
	n, err = b.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.True(t, bytes.Equal(payload, buf[:n]))
}

func TestNewPairSequencedPacketRoundTrip(t *testing.T) {
	a, b, err := NewPair(DomainUnix, TypeSequencedPacket, 0, false)
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	_, err = a.Write([]byte("one message"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := b.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "one message", string(buf[:n]))
}

func TestNewPairInvalidConfiguration(t *testing.T) {
	_, _, err := NewPair(ProtocolDomain(99), TypeStream, 0, false)
	require.ErrorIs(t, err, ErrInvalidDomain)

	_, _, err = NewPair(DomainUnix, Type(99), 0, false)
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestCloseIsIdempotent(t *testing.T) {
	a, b, err := NewPair(DomainUnix, TypeStream, 0, false)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
	require.Equal(t, -1, a.Fd())

	// A socket that never created its descriptor closes trivially.
	s := New(DomainUnix, TypeStream, 0, false)
	require.NoError(t, s.Close())
}

func TestBindAndConnectUnsupportedDomains(t *testing.T) {
	s := New(DomainIPv4, TypeStream, 0, false)
	require.ErrorIs(t, s.Bind("127.0.0.1"), ErrOperationNotSupported)
	require.ErrorIs(t, s.Connect("127.0.0.1"), ErrOperationNotSupported)
	require.Equal(t, -1, s.Fd())

	// Packet sockets bind, but only with the raw type.
	p := New(DomainPacket, TypeDatagram, 0, false)
	require.ErrorIs(t, p.Bind("lo"), ErrOperationNotSupported)
	require.Equal(t, -1, p.Fd())
}

func TestUnixPathTooLong(t *testing.T) {
	path := "/tmp/" + strings.Repeat("x", 108)

	s := New(DomainUnix, TypeStream, 0, false)
	require.ErrorIs(t, s.Bind(path), ErrUnixSocketPathTooLong)
	require.ErrorIs(t, s.Connect(path), ErrUnixSocketPathTooLong)

	// Rejected before any syscall: the descriptor was never created.
	require.Equal(t, -1, s.Fd())
	require.Empty(t, s.BoundURL())
}

func TestConnectInvalidTypeReportedBeforeSyscall(t *testing.T) {
	s := New(DomainUnix, Type(42), 0, false)
	require.ErrorIs(t, s.Connect("/tmp/posixsock-nowhere"), ErrInvalidType)
	require.Equal(t, -1, s.Fd())
}

func TestNonBlockingReceiveWithNoDataIsEmptySuccess(t *testing.T) {
	a, b, err := NewPair(DomainUnix, TypeDatagram, 0, true)
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	buf := make([]byte, 64)
	n, err := b.Read(buf)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPollTimeoutWithNothingReady(t *testing.T) {
	a, b, err := NewPair(DomainUnix, TypeStream, 0, false)
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	result, err := b.Poll(10*time.Millisecond, false)
	require.NoError(t, err)
	require.Equal(t, WaitResult{}, result)
}

func TestPollWritePending(t *testing.T) {
	a, b, err := NewPair(DomainUnix, TypeStream, 0, false)
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	result, err := a.Poll(0, true)
	require.NoError(t, err)
	require.True(t, result.WritingWillNotBlock)
	require.False(t, result.DataToRead)
}

func TestStreamPairPollThenRead(t *testing.T) {
	a, b, err := NewPair(DomainUnix, TypeStream, 0, false)
	require.NoError(t, err)
	defer a.Close()
	defer b.Close()

	payload := make([]byte, 4096)
	_, err = rand.Read(payload)
	require.NoError(t, err)

	sent := 0
	for sent < len(payload) {
		n, err := a.Write(payload[sent:])
		require.NoError(t, err)
		sent += n
	}

	received := make([]byte, 0, len(payload))
	buf := make([]byte, 1024)
	for len(received) < len(payload) {
		result, err := b.Poll(time.Second, false)
		require.NoError(t, err)
		require.True(t, result.DataToRead)

		n, err := b.Read(buf)
		require.NoError(t, err)
		received = append(received, buf[:n]...)
	}

	require.True(t, bytes.Equal(payload, received))
}

func TestPollReportsReadHangupAfterPeerClose(t *testing.T) {
	a, b, err := NewPair(DomainUnix, TypeStream, 0, false)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Close())

	result, err := b.Poll(time.Second, false)
	require.NoError(t, err)
	require.True(t, result.ReadHangup)

	// The stream peer is gone; the read drains to zero bytes.
	n, err := b.Read(make([]byte, 16))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestUnixStreamListenAcceptConnect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "echo.sock")

	server := New(DomainUnix, TypeStream, 0, false)
	defer server.Close()
	require.NoError(t, server.Bind(path))
	require.Equal(t, path, server.BoundURL())
	require.NoError(t, server.Listen(1))

	client := New(DomainUnix, TypeStream, 0, false)
	defer client.Close()
	require.NoError(t, client.Connect(path))

	conn, err := server.Accept()
	require.NoError(t, err)
	defer conn.Close()

	_, err = client.Write([]byte("hello"))
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))

	_, err = conn.Write(buf[:n])
	require.NoError(t, err)

	n, err = client.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))
}

func TestListenAndAcceptUnsupportedConfigurations(t *testing.T) {
	dgram := New(DomainUnix, TypeDatagram, 0, false)
	require.ErrorIs(t, dgram.Listen(1), ErrOperationNotSupported)
	_, err := dgram.Accept()
	require.ErrorIs(t, err, ErrOperationNotSupported)

	ip := New(DomainIPv4, TypeStream, 0, false)
	require.ErrorIs(t, ip.Listen(1), ErrOperationNotSupported)
}

func TestPacketBindMissingInterface(t *testing.T) {
	s := New(DomainPacket, TypeRaw, 0, false)
	defer s.Close()

	err := s.Bind("posixsock-missing0")
	require.Error(t, err)

	// The failure comes from the kernel (descriptor creation without
	// CAP_NET_RAW, or the interface lookup), never from the closed
	// configuration set.
	require.False(t, errors.Is(err, ErrOperationNotSupported))
	require.False(t, errors.Is(err, ErrInvalidDomain))
	require.Empty(t, s.BoundURL())
}

func TestSendToUnsupportedConfigurations(t *testing.T) {
	s := New(DomainUnix, TypeStream, 0, false)
	_, err := s.SendTo("lo", []byte("frame"))
	require.ErrorIs(t, err, ErrOperationNotSupported)

	p := New(DomainPacket, TypeDatagram, 0, false)
	_, err = p.SendTo("lo", []byte("frame"))
	require.ErrorIs(t, err, ErrOperationNotSupported)
}
