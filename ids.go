package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const (
	maxActorID = 255 //The id travels in a single byte
)

var (
	ErrIdentityExhausted = errors.New("every actor id is taken")
)

//IdentityAllocator picks an unused actor id by listening to existing traffic
type IdentityAllocator struct {
	Source Poller        //Must be the only reader of the socket while allocating
	Window time.Duration //How long to listen before choosing
	Idle   time.Duration //Pause after an empty poll, 0 spins
	Clock  Clock
}

//NewIdentityAllocator returns an allocator listening on source for the configured window
func NewIdentityAllocator(source Poller, cfg *Config) *IdentityAllocator {
	return &IdentityAllocator{
		Source: source,
		Window: cfg.IDWindow,
		Idle:   time.Millisecond,
		Clock:  ClockFunc(time.Now),
	}
}

//Allocate listens for the whole window, then returns the lowest id nobody broadcast
func (alloc *IdentityAllocator) Allocate(ctx context.Context) (uint8, error) {
	clock := alloc.Clock
	if clock == nil {
		clock = ClockFunc(time.Now)
	}

	var taken [maxActorID + 1]bool
	seen := 0

	end := clock.Now().Add(alloc.Window)
	for now := clock.Now(); now.Before(end); now = clock.Now() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		data := alloc.Source.Poll()
		if data == nil {
			if alloc.Idle > 0 {
				time.Sleep(alloc.Idle)
			}
			continue
		}

		entity, err := Decode(data, now)
		if err != nil {
			log.Debug("ignoring datagram while allocating id: ", err)
			continue
		}
		actor, ok := entity.(*Actor)
		if !ok {
			continue
		}
		if !taken[actor.ID] {
			taken[actor.ID] = true
			seen++
			log.Debug("Actor id ", actor.ID, " is taken")
		}
	}

	log.Trace("Observed ", seen, " actor ids in ", alloc.Window)
	return lowestFreeID(taken[:])
}

func lowestFreeID(taken []bool) (uint8, error) {
	for id := 0; id <= maxActorID; id++ {
		if id >= len(taken) || !taken[id] {
			return uint8(id), nil
		}
	}
	return 0, ErrIdentityExhausted
}
