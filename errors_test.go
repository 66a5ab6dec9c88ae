//go:build linux

package posixsock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestOSErrorKeepsErrnoReachable(t *testing.T) {
	err := osError("bind /tmp/x.sock", unix.EADDRINUSE)
	require.ErrorIs(t, err, unix.EADDRINUSE)
	require.Contains(t, err.Error(), "bind /tmp/x.sock")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidDomain,
		ErrInvalidType,
		ErrUnixSocketPathTooLong,
		ErrOperationNotSupported,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			require.False(t, errors.Is(a, b))
		}
	}
}
