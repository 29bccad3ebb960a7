//go:build unix

package wire

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// controlReuseAddrPort is installed as a net.ListenConfig.Control callback.
// It sets SO_REUSEADDR (required) and opportunistically SO_REUSEPORT
// (ignored if the platform lacks it), matching the original's
// set_common_sockopts in original_source/src/net.c. The raw-fd-via-
// SyscallConn idiom is grounded on the zero-copy transfer code in
// SeleniaProject-Orizon/internal/runtime/asyncio/zerocopy_unix_file.go.
func controlReuseAddrPort(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		// SO_REUSEPORT is opportunistic: some kernels lack it, and a
		// failure here must not prevent listening.
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
