package main

import (
	"fmt"
	"time"
)

//EntityKind is the discriminator byte leading every datagram
type EntityKind byte

const (
	kindProjectile EntityKind = iota
	kindActor
)

func (kind EntityKind) String() string {
	switch kind {
	case kindProjectile:
		return "projectile"
	case kindActor:
		return "actor"
	default:
		return fmt.Sprintf("unknown(%d)", byte(kind))
	}
}

const (
	actorSize      = 42 //Rendered size of a ship
	projectileSize = 21 //Rendered size of a shot
)

//Entity is anything the world view can hold
type Entity interface {
	Kind() EntityKind
	Pos() Vector2
	Rot() int
	Size() int
}

//Actor holds a player's ship as seen on the network
type Actor struct {
	ID          uint8   //Unique per live participant, never rewritten after the first sighting
	Rotation    int     //Facing direction in degrees
	Position    Vector2 //World coordinates
	ShipVariant uint8   //Cosmetic ship type, 1-4

	LastUpdate time.Time //When a broadcast last refreshed this actor
}

//Kind returns kindActor
func (actor *Actor) Kind() EntityKind { return kindActor }

//Pos returns the actor's position
func (actor *Actor) Pos() Vector2 { return actor.Position }

//Rot returns the actor's rotation
func (actor *Actor) Rot() int { return actor.Rotation }

//Size returns the actor's rendered size
func (actor *Actor) Size() int { return actorSize }

func (actor *Actor) String() string {
	return fmt.Sprintf("actor(%d) at %v rot %d ship %d", actor.ID, actor.Position, actor.Rotation, actor.ShipVariant)
}

//Projectile holds an in-flight shot
type Projectile struct {
	Rotation int     //Direction of travel in degrees
	Position Vector2 //World coordinates

	SpawnTime time.Time //When this shot was decoded
}

//Kind returns kindProjectile
func (proj *Projectile) Kind() EntityKind { return kindProjectile }

//Pos returns the projectile's position
func (proj *Projectile) Pos() Vector2 { return proj.Position }

//Rot returns the projectile's rotation
func (proj *Projectile) Rot() int { return proj.Rotation }

//Size returns the projectile's rendered size
func (proj *Projectile) Size() int { return projectileSize }

func (proj *Projectile) String() string {
	return fmt.Sprintf("projectile at %v rot %d", proj.Position, proj.Rotation)
}
