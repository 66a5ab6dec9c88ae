//go:build linux

package posixsock

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// noDescriptor marks a Socket whose kernel descriptor has not been
// created yet (or has been closed).
const noDescriptor = -1

// unixPathMax is the usable capacity of a Unix-domain socket path: the
// kernel buffer is 108 bytes and one is reserved for the terminator.
const unixPathMax = 107

// Socket owns one kernel socket descriptor and the configuration it was
// created with. Domain, type, frame type and blocking mode are fixed at
// construction; the descriptor itself is materialized lazily by the
// first operation that needs it.
//
// A Socket is not safe for concurrent use without external locking.
type Socket struct {
	fd          int
	domain      ProtocolDomain
	typ         Type
	frameType   FrameType
	nonBlocking bool
	boundURL    string
}

// New returns an unbound Socket holding only configuration. No syscall
// is made until the first Bind, Connect, Listen or SendTo.
func New(domain ProtocolDomain, typ Type, frameType FrameType, nonBlocking bool) *Socket {
	return newSocket(noDescriptor, domain, typ, frameType, nonBlocking)
}

// newSocket wraps a descriptor, or noDescriptor for a not-yet-created
// socket. The finalizer is the safety net for sockets dropped without
// Close.
func newSocket(fd int, domain ProtocolDomain, typ Type, frameType FrameType, nonBlocking bool) *Socket {
	s := &Socket{
		fd:          fd,
		domain:      domain,
		typ:         typ,
		frameType:   frameType,
		nonBlocking: nonBlocking,
	}
	runtime.SetFinalizer(s, (*Socket).finalize)
	return s
}

// NewPair asks the kernel for two mutually connected descriptors and
// wraps each in its own independently owned Socket. The two sockets
// share configuration values only, never state: each one closes only
// its own descriptor.
func NewPair(domain ProtocolDomain, typ Type, frameType FrameType, nonBlocking bool) (*Socket, *Socket, error) {
	mappedDomain := mapProtocolDomain(domain)
	if mappedDomain == mappingFailed {
		return nil, nil, ErrInvalidDomain
	}

	mappedType := mapType(typ)
	if mappedType == mappingFailed {
		return nil, nil, ErrInvalidType
	}

	if nonBlocking {
		mappedType |= unix.SOCK_NONBLOCK
	}

	fds, err := unix.Socketpair(mappedDomain, mappedType, 0)
	if err != nil {
		return nil, nil, osError("socketpair", err)
	}

	return newSocket(fds[0], domain, typ, frameType, nonBlocking),
		newSocket(fds[1], domain, typ, frameType, nonBlocking), nil
}

// create materializes the kernel descriptor. It must run at most once
// per socket; a second call would overwrite and leak the first
// descriptor, which is why every entry point goes through ensureCreated.
func (s *Socket) create() error {
	domain := mapProtocolDomain(s.domain)
	if domain == mappingFailed {
		return ErrInvalidDomain
	}

	typ := mapType(s.typ)
	if typ == mappingFailed {
		return ErrInvalidType
	}

	if s.nonBlocking {
		typ |= unix.SOCK_NONBLOCK
	}

	// Raw sockets get protocol zero here; the frame type is bound per
	// interface in Bind, which keeps the socket quiet until then.
	fd, err := unix.Socket(domain, typ, 0)
	if err != nil {
		return osError("socket", err)
	}

	s.fd = fd
	return nil
}

// ensureCreated creates the descriptor on first use and is a no-op once
// one exists. Re-binding never recreates the descriptor.
func (s *Socket) ensureCreated() error {
	if s.fd != noDescriptor {
		return nil
	}
	return s.create()
}

// Bind attaches the socket to a local name.
//
// For Packet/Raw sockets url is a network interface name: the socket is
// bound to that interface with its configured frame type and joins the
// interface's promiscuous membership group. A bind that succeeds but
// fails the membership join leaves the socket bound and unsubscribed;
// nothing is rolled back.
//
// For Unix-domain sockets url is a filesystem path of at most 107
// bytes.
//
// Every other domain/type combination reports ErrOperationNotSupported.
func (s *Socket) Bind(url string) error {
	switch {
	case s.domain == DomainPacket && s.typ == TypeRaw:
		if err := s.ensureCreated(); err != nil {
			return err
		}

		index, err := interfaceIndex(url)
		if err != nil {
			return err
		}

		addr := &unix.SockaddrLinklayer{
			Protocol: htons(uint16(s.frameType)),
			Ifindex:  index,
			Pkttype:  unix.PACKET_MULTICAST,
		}
		if err := unix.Bind(s.fd, addr); err != nil {
			return osError("bind "+url, err)
		}
		s.boundURL = url

		mreq := &unix.PacketMreq{
			Ifindex: int32(index),
			Type:    unix.PACKET_MR_PROMISC,
		}
		if err := unix.SetsockoptPacketMreq(s.fd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, mreq); err != nil {
			return osError("packet membership on "+url, err)
		}
		return nil

	case s.domain == DomainUnix:
		if len(url) > unixPathMax {
			return ErrUnixSocketPathTooLong
		}

		if err := s.ensureCreated(); err != nil {
			return err
		}

		if err := unix.Bind(s.fd, &unix.SockaddrUnix{Name: url}); err != nil {
			return osError("bind "+url, err)
		}
		s.boundURL = url
		return nil
	}

	return ErrOperationNotSupported
}

// Connect establishes a connection to a Unix-domain socket at the given
// filesystem path. Other domains report ErrOperationNotSupported.
func (s *Socket) Connect(url string) error {
	if s.domain != DomainUnix {
		return ErrOperationNotSupported
	}

	if len(url) > unixPathMax {
		return ErrUnixSocketPathTooLong
	}

	if err := s.ensureCreated(); err != nil {
		return err
	}

	if err := unix.Connect(s.fd, &unix.SockaddrUnix{Name: url}); err != nil {
		return osError("connect "+url, err)
	}
	return nil
}

// Listen marks a bound Unix-domain stream or sequenced-packet socket as
// accepting connections.
func (s *Socket) Listen(backlog int) error {
	if s.domain != DomainUnix || (s.typ != TypeStream && s.typ != TypeSequencedPacket) {
		return ErrOperationNotSupported
	}

	if err := s.ensureCreated(); err != nil {
		return err
	}

	if err := unix.Listen(s.fd, backlog); err != nil {
		return osError("listen", err)
	}
	return nil
}

// Accept takes the next pending connection and wraps it in a new,
// independently owned Socket with the listener's configuration. The
// accepted descriptor inherits the listener's blocking mode.
func (s *Socket) Accept() (*Socket, error) {
	if s.domain != DomainUnix || (s.typ != TypeStream && s.typ != TypeSequencedPacket) {
		return nil, ErrOperationNotSupported
	}

	flags := 0
	if s.nonBlocking {
		flags = unix.SOCK_NONBLOCK
	}

	fd, _, err := unix.Accept4(s.fd, flags)
	if err != nil {
		return nil, osError("accept", err)
	}

	return newSocket(fd, s.domain, s.typ, s.frameType, s.nonBlocking), nil
}

// Read receives the next chunk of data into buf. It is shorthand for
// ReceiveFrom and shares its zero-byte contract.
func (s *Socket) Read(buf []byte) (int, error) {
	return s.ReceiveFrom(buf)
}

// ReceiveFrom receives into buf and returns the byte count. On a
// non-blocking socket a would-block condition reads as 0 bytes with a
// nil error, indistinguishable here from an empty datagram or a closed
// stream peer; use Poll's DataToRead and ReadHangup flags to tell them
// apart before reading.
func (s *Socket) ReceiveFrom(buf []byte) (int, error) {
	flags := 0
	if s.nonBlocking {
		flags |= unix.MSG_DONTWAIT
	}

	n, _, err := unix.Recvfrom(s.fd, buf, flags)
	if err != nil {
		if s.nonBlocking && (err == unix.EAGAIN || err == unix.EWOULDBLOCK) {
			return 0, nil
		}
		return 0, osError("recvfrom", err)
	}

	return n, nil
}

// Write sends buf and returns the number of bytes the kernel accepted.
// Short writes are possible; a caller that needs the whole buffer out
// must loop.
func (s *Socket) Write(buf []byte) (int, error) {
	n, err := unix.Write(s.fd, buf)
	if err != nil {
		return 0, osError("write", err)
	}
	return n, nil
}

// placeholderHardwareAddr is the destination stamped on outgoing frames.
// Consumers address real peers inside their own frame payloads.
var placeholderHardwareAddr = [8]byte{1, 1, 5, 4, 0, 0}

// SendTo sends a raw frame out of the named interface. Only Packet/Raw
// sockets support it; everything else reports ErrOperationNotSupported.
func (s *Socket) SendTo(url string, buf []byte) (int, error) {
	if s.domain != DomainPacket || s.typ != TypeRaw {
		return 0, ErrOperationNotSupported
	}

	if err := s.ensureCreated(); err != nil {
		return 0, err
	}

	index, err := interfaceIndex(url)
	if err != nil {
		return 0, err
	}

	addr := &unix.SockaddrLinklayer{
		Protocol: htons(uint16(s.frameType)),
		Ifindex:  index,
		Halen:    6,
		Addr:     placeholderHardwareAddr,
	}

	if err := unix.Sendto(s.fd, buf, 0, addr); err != nil {
		return 0, osError("sendto "+url, err)
	}
	return len(buf), nil
}

// Close releases the descriptor. Closing a socket that was never
// created, or closing one twice, succeeds without touching the kernel.
// A failing close keeps the descriptor so the caller can retry.
func (s *Socket) Close() error {
	if s.fd == noDescriptor {
		return nil
	}

	if err := unix.Close(s.fd); err != nil {
		return osError("close", err)
	}

	s.fd = noDescriptor
	return nil
}

// finalize closes a still-open descriptor when the Socket is collected
// without an explicit Close.
func (s *Socket) finalize() {
	if s.fd != noDescriptor {
		unix.Close(s.fd)
	}
}

// Fd exposes the raw descriptor for external readiness machinery, or -1
// before the descriptor exists.
func (s *Socket) Fd() int {
	return s.fd
}

// Domain reports the protocol domain the socket was configured with.
func (s *Socket) Domain() ProtocolDomain {
	return s.domain
}

// Type reports the socket type the socket was configured with.
func (s *Socket) Type() Type {
	return s.typ
}

// NonBlocking reports whether the socket was configured non-blocking.
func (s *Socket) NonBlocking() bool {
	return s.nonBlocking
}

// BoundURL reports the path or interface name of the last successful
// Bind, for diagnostics. Empty until a bind succeeds.
func (s *Socket) BoundURL() string {
	return s.boundURL
}
