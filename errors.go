package posixsock

import (
	"errors"
	"fmt"
)

// Configuration, validation and capability failures are a closed set of
// sentinel values. Everything else a fallible operation can return wraps
// the errno of the failing syscall, so callers branch on one taxonomy
// with errors.Is regardless of where the failure came from.
var (
	// ErrInvalidDomain means the protocol domain has no kernel
	// address family on this platform.
	ErrInvalidDomain = errors.New("posixsock: invalid protocol domain")

	// ErrInvalidType means the socket type has no kernel constant on
	// this platform.
	ErrInvalidType = errors.New("posixsock: invalid socket type")

	// ErrUnixSocketPathTooLong means a Unix-domain path does not fit
	// the kernel's sockaddr_un buffer.
	ErrUnixSocketPathTooLong = errors.New("posixsock: unix socket path too long")

	// ErrOperationNotSupported means the operation is not defined for
	// this socket's domain/type combination.
	ErrOperationNotSupported = errors.New("posixsock: operation not supported")
)

// osError wraps the errno of a failing syscall with the operation that
// hit it. The errno stays reachable through errors.Is and errors.As.
func osError(op string, err error) error {
	return fmt.Errorf("posixsock: %s: %w", op, err)
}
