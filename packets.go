package main

import (
	"math"
	"time"

	"github.com/pkg/errors"
	crunch "github.com/superwhiskers/crunch/v3"
)

const (
	projectileLen = 11 //kind(1) + rotation(2) + x(4) + y(4)
	actorLen      = 13 //kind(1) + id(1) + rotation(2) + x(4) + y(4) + ship(1)
)

var (
	ErrShortDatagram = errors.New("datagram is shorter than its kind")
	ErrUnknownKind   = errors.New("unknown entity kind")
	ErrFieldRange    = errors.New("field does not fit its wire size")
)

//kindLen returns the wire length of an entity kind, or 0 if the kind is unknown
func kindLen(kind EntityKind) int {
	switch kind {
	case kindProjectile:
		return projectileLen
	case kindActor:
		return actorLen
	}
	return 0
}

//Encode returns the datagram for an entity
func Encode(entity Entity) ([]byte, error) {
	switch ent := entity.(type) {
	case *Actor:
		return encodeActor(ent)
	case *Projectile:
		return encodeProjectile(ent)
	}
	return nil, errors.Wrapf(ErrUnknownKind, "cannot encode %T", entity)
}

func encodeActor(actor *Actor) ([]byte, error) {
	rotation, err := wireRotation(actor.Rotation)
	if err != nil {
		return nil, errors.Wrapf(err, "actor %d", actor.ID)
	}
	x, y, err := wirePosition(actor.Position)
	if err != nil {
		return nil, errors.Wrapf(err, "actor %d", actor.ID)
	}

	buf := crunch.NewBuffer(make([]byte, actorLen))
	buf.WriteByteNext(byte(kindActor))
	buf.WriteByteNext(actor.ID)
	buf.WriteU16BENext([]uint16{rotation})
	buf.WriteU32BENext([]uint32{x, y})
	buf.WriteByteNext(actor.ShipVariant)
	return buf.Bytes(), nil
}

func encodeProjectile(proj *Projectile) ([]byte, error) {
	rotation, err := wireRotation(proj.Rotation)
	if err != nil {
		return nil, errors.Wrap(err, "projectile")
	}
	x, y, err := wirePosition(proj.Position)
	if err != nil {
		return nil, errors.Wrap(err, "projectile")
	}

	buf := crunch.NewBuffer(make([]byte, projectileLen))
	buf.WriteByteNext(byte(kindProjectile))
	buf.WriteU16BENext([]uint16{rotation})
	buf.WriteU32BENext([]uint32{x, y})
	return buf.Bytes(), nil
}

func wireRotation(rotation int) (uint16, error) {
	if rotation < 0 || rotation > math.MaxUint16 {
		return 0, errors.Wrapf(ErrFieldRange, "rotation %d", rotation)
	}
	return uint16(rotation), nil
}

//wirePosition truncates a position to whole units, x/y must land in 0..MaxUint32
func wirePosition(pos Vector2) (uint32, uint32, error) {
	pos = pos.Truncate()
	for _, v := range []float64{pos.X, pos.Y} {
		if math.IsNaN(v) || v < 0 || v > math.MaxUint32 {
			return 0, 0, errors.Wrapf(ErrFieldRange, "position %v", pos)
		}
	}
	return uint32(pos.X), uint32(pos.Y), nil
}

//Decode parses a datagram into an Actor or Projectile, stamping it with now
func Decode(data []byte, now time.Time) (Entity, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrShortDatagram, "empty datagram")
	}

	kind := EntityKind(data[0])
	want := kindLen(kind)
	if want == 0 {
		return nil, errors.Wrapf(ErrUnknownKind, "%s", kind)
	}
	if len(data) < want {
		return nil, errors.Wrapf(ErrShortDatagram, "%s needs %d bytes, got %d", kind, want, len(data))
	}

	//Anything past the fixed layout is ignored
	buf := crunch.NewBuffer(data[:want])
	buf.ReadByteNext() //kind

	if kind == kindActor {
		actor := &Actor{}
		actor.ID = buf.ReadByteNext()
		actor.Rotation = int(buf.ReadU16BENext(1)[0])
		pos := buf.ReadU32BENext(2)
		actor.Position = Vector2{float64(pos[0]), float64(pos[1])}
		actor.ShipVariant = buf.ReadByteNext()
		actor.LastUpdate = now
		return actor, nil
	}

	proj := &Projectile{}
	proj.Rotation = int(buf.ReadU16BENext(1)[0])
	pos := buf.ReadU32BENext(2)
	proj.Position = Vector2{float64(pos[0]), float64(pos[1])}
	proj.SpawnTime = now
	return proj, nil
}

//IsMalformed reports whether err came from a datagram that could not be decoded
func IsMalformed(err error) bool {
	switch errors.Cause(err) {
	case ErrShortDatagram, ErrUnknownKind:
		return true
	}
	return false
}
