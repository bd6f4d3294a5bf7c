//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package main

import (
	"syscall"

	"golang.org/x/sys/unix"
)

//socketControl lets several processes on one host share the port and send to broadcast addresses
func socketControl(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		for _, opt := range []int{unix.SO_REUSEADDR, unix.SO_REUSEPORT, unix.SO_BROADCAST} {
			if sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, opt, 1); sockErr != nil {
				return
			}
		}
	})
	if err != nil {
		return err
	}
	return sockErr
}

//readNow receives with MSG_DONTWAIT so an empty queue returns EAGAIN instead of waiting
func (tr *Transport) readNow() (int, error) {
	raw, err := tr.recv.SyscallConn()
	if err != nil {
		return 0, err
	}

	var n int
	var readErr error
	err = raw.Read(func(fd uintptr) bool {
		n, _, readErr = unix.Recvfrom(int(fd), tr.buffer, unix.MSG_DONTWAIT)
		return true
	})
	if err != nil {
		return 0, err
	}
	if readErr != nil && readErr != unix.EAGAIN && readErr != unix.EWOULDBLOCK {
		log.Trace("receive failed: ", readErr)
	}
	return n, readErr
}
