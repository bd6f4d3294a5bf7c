package main

import (
	"time"
)

const (
	defaultMaxDrain = 255 //Datagrams consumed per frame when MaxDrain is unset
)

//Clock tells the world what time it is
type Clock interface {
	Now() time.Time
}

//ClockFunc adapts a function to a Clock
type ClockFunc func() time.Time

//Now calls f
func (f ClockFunc) Now() time.Time {
	return f()
}

//World holds every remote entity this process knows about
type World struct {
	LocalID       uint8         //Our own actor id, echoes of it are dropped
	ActorTTL      time.Duration //An actor not refreshed for longer than this is gone
	ProjectileTTL time.Duration //A shot older than this is gone
	MaxDrain      int           //Datagrams consumed per frame, the rest wait in the socket
	Clock         Clock

	entities []Entity         //Arrival ordered view handed to the renderer
	actors   map[uint8]*Actor //Live actors by id, each also present in entities
}

//NewWorld returns an empty world for the local actor id
func NewWorld(localID uint8, cfg *Config) *World {
	return &World{
		LocalID:       localID,
		ActorTTL:      cfg.ActorTTL,
		ProjectileTTL: cfg.ProjectileTTL,
		MaxDrain:      cfg.MaxDrain,
		Clock:         ClockFunc(time.Now),
		entities:      make([]Entity, 0),
		actors:        make(map[uint8]*Actor),
	}
}

func (world *World) now() time.Time {
	if world.Clock == nil {
		return time.Now()
	}
	return world.Clock.Now()
}

//Ingest decodes one datagram and merges it, malformed datagrams are logged and dropped
func (world *World) Ingest(data []byte) error {
	now := world.now()

	entity, err := Decode(data, now)
	if err != nil {
		if IsMalformed(err) {
			log.Warn("dropping malformed datagram ", data, ": ", err)
		} else {
			log.Debug("dropping datagram ", data, ": ", err)
		}
		return err
	}

	switch ent := entity.(type) {
	case *Actor:
		world.mergeActor(ent, now)
	case *Projectile:
		ent.Rotation = wrapDegrees(ent.Rotation + 180) //Shots travel opposite to the encoded facing
		world.entities = append(world.entities, ent)
		log.Trace("Added ", ent)
	}
	return nil
}

func (world *World) mergeActor(actor *Actor, now time.Time) {
	if actor.ID == world.LocalID {
		return //Our own broadcast looped back
	}

	if existing, ok := world.actors[actor.ID]; ok {
		//Update fields in place, the renderer may still hold this pointer
		existing.Rotation = actor.Rotation
		existing.Position = actor.Position
		existing.LastUpdate = now
		return
	}

	actor.LastUpdate = now
	world.actors[actor.ID] = actor
	world.entities = append(world.entities, actor)
	log.Info("Actor ", actor.ID, " joined with ship ", actor.ShipVariant)
}

//Sweep removes actors that stopped broadcasting and shots that outlived their TTL
func (world *World) Sweep() {
	now := world.now()

	kept := world.entities[:0]
	for _, entity := range world.entities {
		switch ent := entity.(type) {
		case *Actor:
			if now.Sub(ent.LastUpdate) > world.ActorTTL {
				delete(world.actors, ent.ID)
				log.Info("Actor ", ent.ID, " left")
				continue
			}
		case *Projectile:
			if now.Sub(ent.SpawnTime) > world.ProjectileTTL {
				continue
			}
		}
		kept = append(kept, entity)
	}

	//Release the tail so evicted entities can be collected
	for i := len(kept); i < len(world.entities); i++ {
		world.entities[i] = nil
	}
	world.entities = kept
}

//Frame drains up to MaxDrain datagrams, sweeps, and returns the frame's snapshot
func (world *World) Frame(source Poller) []Entity {
	drain := world.MaxDrain
	if drain <= 0 {
		drain = defaultMaxDrain
	}

	for i := 0; i < drain; i++ {
		data := source.Poll()
		if data == nil {
			break
		}
		world.Ingest(data)
	}

	world.Sweep()
	return world.Snapshot()
}

//Snapshot returns the current entities, valid until the next Ingest or Sweep
func (world *World) Snapshot() []Entity {
	return world.entities
}

//GetActor returns the live actor with the given id
func (world *World) GetActor(id uint8) (*Actor, bool) {
	actor, ok := world.actors[id]
	return actor, ok
}

//GetActorCount returns how many remote actors are live
func (world *World) GetActorCount() int {
	return len(world.actors)
}
