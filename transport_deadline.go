//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package main

import (
	"time"
)

const pollDeadline = time.Millisecond

//readNow falls back to the shortest practical read deadline
func (tr *Transport) readNow() (int, error) {
	if err := tr.recv.SetReadDeadline(time.Now().Add(pollDeadline)); err != nil {
		return 0, err
	}
	n, _, err := tr.recv.ReadFromUDP(tr.buffer)
	return n, err
}
