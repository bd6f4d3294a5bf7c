package main

import (
	"math"
	"time"
)

const (
	shipVelocity    = 10.0 //Units a ship moves per frame
	projectileSpeed = 15.0 //Units a shot moves per frame, too slow and ships shoot themselves
	muzzleDistance  = 40.0 //How far ahead of the ship's center a shot spawns

	defaultFireRate = 50 * time.Millisecond
	defaultReload   = 500 * time.Millisecond
	defaultMagazine = 5
)

//Ship holds the local player, which is broadcast but never stored in the world
type Ship struct {
	ID          uint8
	Rotation    int
	Position    Vector2
	ShipVariant uint8
	Alive       bool

	Field Vector2 //Size of the play field, the ship stays inside it
}

//NewShip returns a live ship facing right
func NewShip(id, variant uint8, position, field Vector2) *Ship {
	return &Ship{
		ID:          id,
		Rotation:    90,
		Position:    position,
		ShipVariant: variant,
		Alive:       true,
		Field:       field,
	}
}

//Move steps the ship along dir and keeps it inside the field
func (ship *Ship) Move(dir Vector2) {
	if dir.X != 0 || dir.Y != 0 {
		ship.Position = ship.Position.Add(dir.Normalize().Scale(shipVelocity))
	}

	border := float64(actorSize) / 2
	ship.Position.X = math.Max(border, math.Min(ship.Field.X-border, ship.Position.X))
	ship.Position.Y = math.Max(border, math.Min(ship.Field.Y-border, ship.Position.Y))
}

//Aim turns the ship's nose toward target
func (ship *Ship) Aim(target Vector2) {
	rel := target.Sub(ship.Position)
	angle := -math.Atan2(rel.Y, rel.X)*180/math.Pi + 180 //0-360 instead of -180-180
	ship.Rotation = int(angle) + 270                     //+270 rather than -90 keeps it non-negative
}

//Actor returns the ship as it goes on the wire
func (ship *Ship) Actor() *Actor {
	return &Actor{
		ID:          ship.ID,
		Rotation:    ship.Rotation,
		Position:    ship.Position,
		ShipVariant: ship.ShipVariant,
	}
}

//Muzzle returns a new shot just ahead of the ship's nose
func (ship *Ship) Muzzle() *Projectile {
	return &Projectile{
		Rotation: ship.Rotation,
		Position: ship.Position.Add(heading(ship.Rotation).Scale(muzzleDistance)),
	}
}

//Die marks the ship as hit
func (ship *Ship) Die() {
	if !ship.Alive {
		return
	}
	ship.Alive = false
	log.Info("Ship ", ship.ID, " was hit at ", ship.Position)
}

//Respawn brings the ship back
func (ship *Ship) Respawn() {
	if ship.Alive {
		return
	}
	ship.Alive = true
	log.Info("Ship ", ship.ID, " respawned")
}

//Gun limits how fast the local ship can shoot
type Gun struct {
	FireRate time.Duration //Minimum time between shots
	Reload   time.Duration //Pause after emptying the magazine
	Magazine int           //Shots per magazine

	fired      int
	lastFired  time.Time
	lastReload time.Time
}

//NewGun returns a loaded gun
func NewGun() *Gun {
	return &Gun{
		FireRate: defaultFireRate,
		Reload:   defaultReload,
		Magazine: defaultMagazine,
	}
}

//TryFire reports whether a shot may leave the gun at now, and counts it if so
func (gun *Gun) TryFire(now time.Time) bool {
	if now.Sub(gun.lastReload) <= gun.Reload || now.Sub(gun.lastFired) <= gun.FireRate {
		return false
	}

	gun.lastFired = now
	gun.fired++
	if gun.fired >= gun.Magazine {
		gun.lastReload = now
		gun.fired = 0
	}
	return true
}

//Advance moves a shot one frame along its direction of travel
func (proj *Projectile) Advance(speed float64) {
	proj.Position = proj.Position.Sub(heading(proj.Rotation).Scale(speed))
}

//renderOffset returns the top left corner of something drawn centered on pos
func renderOffset(pos Vector2, size int) Vector2 {
	half := float64(size) / 2
	return Vector2{pos.X - half, pos.Y - half}
}

//Collides reports whether a shot's corner is inside the ship's box
func Collides(ship *Ship, proj *Projectile) bool {
	shipCorner := renderOffset(ship.Position, actorSize)
	projCorner := renderOffset(proj.Position, projectileSize)
	size := float64(actorSize)

	return projCorner.X > shipCorner.X && projCorner.X < shipCorner.X+size &&
		projCorner.Y > shipCorner.Y && projCorner.Y < shipCorner.Y+size
}
