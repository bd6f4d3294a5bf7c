package main

import (
	"math"
	"time"
)

const (
	orbitStep           = 0.02 //Radians the autopilot advances around its orbit each frame
	defaultRespawnDelay = 2 * time.Second
)

//AutoPilot flies the local ship without a human, circling the field and shooting the nearest actor
type AutoPilot struct {
	Center       Vector2
	Radius       float64
	RespawnDelay time.Duration

	angle  float64
	diedAt time.Time
}

//NewAutoPilot returns a pilot orbiting the middle of the field
func NewAutoPilot(field Vector2) *AutoPilot {
	return &AutoPilot{
		Center:       field.Scale(0.5),
		Radius:       math.Min(field.X, field.Y) / 3,
		RespawnDelay: defaultRespawnDelay,
	}
}

//Steer returns this frame's input
func (pilot *AutoPilot) Steer(frame *Frame) Input {
	local := frame.Local
	if !local.Alive {
		if pilot.diedAt.IsZero() {
			pilot.diedAt = frame.Time
		}
		if frame.Time.Sub(pilot.diedAt) >= pilot.RespawnDelay {
			pilot.diedAt = time.Time{}
			return Input{Respawn: true}
		}
		return Input{}
	}

	target := nearestActor(local.Position, frame.Entities)
	pilot.angle = math.Mod(pilot.angle+pilot.step(local.Position, target), 2*math.Pi)
	goal := pilot.Center.Add(Vector2{math.Cos(pilot.angle), math.Sin(pilot.angle)}.Scale(pilot.Radius))

	input := Input{
		Move: goal.Sub(local.Position),
		Aim:  local.Position.Add(heading(local.Rotation).Scale(muzzleDistance)),
	}
	if target != nil {
		input.Aim = target.Position
		input.Fire = true
	}

	//Close enough to the goal, stop rather than jitter around it
	if input.Move.Magnitude() < shipVelocity/2 {
		input.Move = Vector2{}
	}
	return input
}

//step slows the orbit down to a quarter while a target is close, full speed at a diameter away or more
func (pilot *AutoPilot) step(from Vector2, target *Actor) float64 {
	if target == nil || pilot.Radius <= 0 {
		return orbitStep
	}
	reach := pilot.Radius * 2
	dist := math.Min(target.Position.Sub(from).Magnitude(), reach)
	return remap(0, reach, orbitStep/4, orbitStep, dist)
}

func nearestActor(from Vector2, entities []Entity) *Actor {
	var nearest *Actor
	best := math.Inf(1)
	for _, entity := range entities {
		actor, ok := entity.(*Actor)
		if !ok {
			continue
		}
		if dist := actor.Position.Sub(from).Magnitude(); dist < best {
			best = dist
			nearest = actor
		}
	}
	return nearest
}
