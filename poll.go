//go:build linux

package posixsock

import (
	"time"

	"golang.org/x/sys/unix"
)

// WaitResult is the event mask of a readiness poll decomposed into named
// facts. A zero WaitResult means nothing happened before the timeout.
type WaitResult struct {
	// DataToRead reports normal or urgent data waiting to be read.
	DataToRead bool

	// UrgentDataToRead reports out-of-band data waiting to be read.
	UrgentDataToRead bool

	// WritingWillNotBlock reports that a write can proceed immediately.
	WritingWillNotBlock bool

	// ReadHangup reports that the peer shut down its writing side;
	// buffered data may still be readable.
	ReadHangup bool

	// WriteHangup reports that the peer is gone and writes will fail.
	WriteHangup bool

	// Error reports a pending error condition on the descriptor.
	Error bool

	// Invalid reports that the descriptor is not open.
	Invalid bool
}

// Poll waits up to timeout for the socket to become ready. Incoming
// data, urgent data and read-hangup are always watched; writability only
// when writePending is set, so a caller with bytes queued returns early
// to send them. A negative timeout blocks indefinitely, following
// poll(2). A poll that times out with nothing ready is a success with
// every flag false, not an error.
func (s *Socket) Poll(timeout time.Duration, writePending bool) (WaitResult, error) {
	events := int16(unix.POLLIN | unix.POLLPRI | unix.POLLRDHUP)
	if writePending {
		events |= unix.POLLOUT
	}

	fds := []unix.PollFd{{
		Fd:     int32(s.fd),
		Events: events,
	}}

	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}

	if _, err := unix.Poll(fds, ms); err != nil {
		return WaitResult{}, osError("poll", err)
	}

	revents := fds[0].Revents
	return WaitResult{
		DataToRead:          revents&(unix.POLLIN|unix.POLLPRI) != 0,
		UrgentDataToRead:    revents&unix.POLLPRI != 0,
		WritingWillNotBlock: revents&unix.POLLOUT != 0,
		ReadHangup:          revents&unix.POLLRDHUP != 0,
		WriteHangup:         revents&unix.POLLHUP != 0,
		Error:               revents&unix.POLLERR != 0,
		Invalid:             revents&unix.POLLNVAL != 0,
	}, nil
}
