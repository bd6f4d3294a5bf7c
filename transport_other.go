//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package main

import (
	"syscall"
)

//socketControl leaves the platform defaults in place
func socketControl(network, address string, c syscall.RawConn) error {
	return nil
}
