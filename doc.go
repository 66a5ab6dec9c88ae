// doc.go
// Package posixsock provides one small socket primitive across protocol
// domains: Unix domain, IPv4/IPv6, link-layer packet, CAN, Bluetooth and
// VSock sockets behind a uniform blocking or non-blocking interface with
// readiness polling and connected-pair creation.
//
// A Socket starts as configuration only; the kernel descriptor is created
// lazily by the first Bind, Connect, Listen or SendTo that needs it. The
// package does not buffer, frame or retry anything. It is the layer that
// protocol stacks and event loops are built on, not one of them.
//
// Basic usage:
//
//	// Connected datagram pair
//	a, b, _ := posixsock.NewPair(posixsock.DomainUnix, posixsock.TypeDatagram, 0, false)
//	a.Write([]byte("ping"))
//	buf := make([]byte, 64)
//	n, _ := b.Read(buf)
//
//	// Link-layer capture on an interface
//	s := posixsock.New(posixsock.DomainPacket, posixsock.TypeRaw, 0x88B5, true)
//	_ = s.Bind("eth0")
//	ready, _ := s.Poll(time.Second, false)
//	if ready.DataToRead {
//		n, _ = s.Read(buf)
//	}
//
// Concurrency: a Socket has no internal locking. One instance must not be
// used from multiple goroutines without external synchronization.
package posixsock
