//go:build !unix

package wire

import "syscall"

// controlReuseAddrPort on non-unix platforms is a no-op: net.ListenConfig
// already applies SO_REUSEADDR-equivalent behaviour by default on Windows,
// and SO_REUSEPORT has no portable meaning there.
func controlReuseAddrPort(_, _ string, _ syscall.RawConn) error {
	return nil
}
