//go:build windows

package main

import (
	"syscall"

	"golang.org/x/sys/windows"
)

//socketControl lets several processes on one host share the port and send to broadcast addresses
func socketControl(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		for _, opt := range []int{windows.SO_REUSEADDR, windows.SO_BROADCAST} {
			if sockErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, opt, 1); sockErr != nil {
				return
			}
		}
	})
	if err != nil {
		return err
	}
	return sockErr
}
