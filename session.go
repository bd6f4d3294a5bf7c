package main

import (
	"context"
	"time"
)

//Network is what a session needs from the transport
type Network interface {
	Poller
	Broadcaster
}

//Frame is what a renderer gets once per tick
type Frame struct {
	Number   uint64
	Time     time.Time
	Local    Ship     //Copy of the local ship
	Entities []Entity //Read only, valid until the next frame
}

//Renderer consumes frames, it must not keep Entities past the call
type Renderer interface {
	Render(frame *Frame)
}

//RenderFunc adapts a function to a Renderer
type RenderFunc func(frame *Frame)

//Render calls f
func (f RenderFunc) Render(frame *Frame) {
	f(frame)
}

//Input is what the local player wants to do this frame
type Input struct {
	Move    Vector2 //Direction to move in, need not be normalized
	Aim     Vector2 //Point to face
	Fire    bool
	Respawn bool
}

//Pilot decides the local player's input from the current frame
type Pilot interface {
	Steer(frame *Frame) Input
}

//Session runs the frame loop, it is the only thing touching the world
type Session struct {
	Net       Network
	World     *World
	Ship      *Ship
	Gun       *Gun
	Pilot     Pilot
	Renderers []Renderer
	FPS       int
	Clock     Clock

	frame uint64
}

//NewSession returns a session bound to an open network and an allocated ship
func NewSession(network Network, world *World, ship *Ship, pilot Pilot, cfg *Config) *Session {
	return &Session{
		Net:   network,
		World: world,
		Ship:  ship,
		Gun:   NewGun(),
		Pilot: pilot,
		FPS:   cfg.FPS,
		Clock: ClockFunc(time.Now),
	}
}

//AddRenderer registers a renderer for every following frame
func (session *Session) AddRenderer(renderer Renderer) {
	session.Renderers = append(session.Renderers, renderer)
}

//Run ticks the session until ctx is cancelled
func (session *Session) Run(ctx context.Context) error {
	fps := session.FPS
	if fps <= 0 {
		fps = 60
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	log.Info("Running session for ship ", session.Ship.ID, " at ", fps, " FPS")
	for {
		select {
		case <-ctx.Done():
			log.Info("Session stopped after ", session.frame, " frames")
			return ctx.Err()
		case <-ticker.C:
			session.Step()
		}
	}
}

//Step runs a single frame
func (session *Session) Step() *Frame {
	now := session.Clock.Now()
	ship := session.Ship

	entities := session.World.Frame(session.Net)
	for _, entity := range entities {
		proj, ok := entity.(*Projectile)
		if !ok {
			continue
		}
		proj.Advance(projectileSpeed)
		if ship.Alive && Collides(ship, proj) {
			ship.Die()
		}
	}

	session.frame++
	frame := &Frame{
		Number:   session.frame,
		Time:     now,
		Local:    *ship,
		Entities: entities,
	}

	input := Input{}
	if session.Pilot != nil {
		input = session.Pilot.Steer(frame)
	}
	if input.Respawn {
		ship.Respawn()
	}

	if ship.Alive {
		ship.Move(input.Move)
		ship.Aim(input.Aim)
		session.send(ship.Actor())

		if input.Fire && session.Gun.TryFire(now) {
			session.send(ship.Muzzle())
		}
	}
	frame.Local = *ship

	for _, renderer := range session.Renderers {
		renderer.Render(frame)
	}
	return frame
}

func (session *Session) send(entity Entity) {
	data, err := Encode(entity)
	if err != nil {
		log.Debug("not broadcasting ", entity, ": ", err)
		return
	}
	if err := session.Net.Broadcast(data); err != nil {
		log.Error(err)
	}
}
