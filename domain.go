//go:build linux

package posixsock

import "golang.org/x/sys/unix"

// ProtocolDomain selects the communication realm of a socket.
type ProtocolDomain int

const (
	// DomainUnix is local inter-process communication over the filesystem namespace.
	DomainUnix ProtocolDomain = iota

	// DomainIPv4 and DomainIPv6 are the Internet protocol families.
	DomainIPv4
	DomainIPv6

	// DomainPacket sends and receives raw frames at the network-interface
	// level, below transport and network processing.
	DomainPacket

	// DomainCan is the controller area network bus.
	DomainCan

	// DomainBluetooth is the Bluetooth host protocol stack.
	DomainBluetooth

	// DomainVSock is host/guest communication on virtual machines.
	DomainVSock
)

// Type selects the communication semantics of a socket.
type Type int

const (
	// TypeStream is a reliable, ordered byte stream.
	TypeStream Type = iota

	// TypeDatagram is unreliable, unordered messages with preserved boundaries.
	TypeDatagram

	// TypeSequencedPacket is reliable, ordered messages with preserved boundaries.
	TypeSequencedPacket

	// TypeRaw is raw link-layer frames, only meaningful with DomainPacket.
	TypeRaw
)

// FrameType is a link-layer ethertype. It selects which frames a
// Packet/Raw socket sees once bound to an interface.
type FrameType uint16

// mappingFailed is returned by the mapping functions for an enumerator
// with no kernel constant behind it on this platform.
const mappingFailed = -1

// mapProtocolDomain translates a portable domain into the kernel
// address-family constant, or mappingFailed if the platform has none.
func mapProtocolDomain(domain ProtocolDomain) int {
	switch domain {
	case DomainUnix:
		return unix.AF_UNIX
	case DomainIPv4:
		return unix.AF_INET
	case DomainIPv6:
		return unix.AF_INET6
	case DomainPacket:
		return unix.AF_PACKET
	case DomainCan:
		return unix.AF_CAN
	case DomainBluetooth:
		return unix.AF_BLUETOOTH
	case DomainVSock:
		return unix.AF_VSOCK
	}

	return mappingFailed
}

// mapType translates a portable socket type into the kernel SOCK_*
// constant, or mappingFailed if the platform has none.
func mapType(typ Type) int {
	switch typ {
	case TypeStream:
		return unix.SOCK_STREAM
	case TypeDatagram:
		return unix.SOCK_DGRAM
	case TypeSequencedPacket:
		return unix.SOCK_SEQPACKET
	case TypeRaw:
		return unix.SOCK_RAW
	}

	return mappingFailed
}

// String returns a human-readable domain name for diagnostics.
func (d ProtocolDomain) String() string {
	switch d {
	case DomainUnix:
		return "unix"
	case DomainIPv4:
		return "ipv4"
	case DomainIPv6:
		return "ipv6"
	case DomainPacket:
		return "packet"
	case DomainCan:
		return "can"
	case DomainBluetooth:
		return "bluetooth"
	case DomainVSock:
		return "vsock"
	default:
		return "unknown"
	}
}

// String returns a human-readable type name for diagnostics.
func (t Type) String() string {
	switch t {
	case TypeStream:
		return "stream"
	case TypeDatagram:
		return "datagram"
	case TypeSequencedPacket:
		return "seqpacket"
	case TypeRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// htons converts a short to network byte order for the protocol field of
// link-layer addresses.
func htons(v uint16) uint16 {
	return v<<8 | v>>8
}
