package main

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

//fakeNet queues inbound datagrams and records everything broadcast
type fakeNet struct {
	inbox [][]byte
	sent  [][]byte
	polls int
}

func (n *fakeNet) Push(datagrams ...[]byte) {
	n.inbox = append(n.inbox, datagrams...)
}

func (n *fakeNet) Poll() []byte {
	n.polls++
	if len(n.inbox) == 0 {
		return nil
	}
	data := n.inbox[0]
	n.inbox = n.inbox[1:]
	return data
}

func (n *fakeNet) Broadcast(data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	n.sent = append(n.sent, cp)
	return nil
}

func mustEncode(t *testing.T, entity Entity) []byte {
	t.Helper()
	data, err := Encode(entity)
	if err != nil {
		t.Fatalf("encode %v: %v", entity, err)
	}
	return data
}

func newTestWorld(localID uint8) (*World, *fakeClock) {
	clock := newFakeClock()
	world := NewWorld(localID, DefaultConfig())
	world.Clock = clock
	return world, clock
}
