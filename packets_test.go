package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestEncodeActorLayout(t *testing.T) {
	actor := &Actor{ID: 5, Rotation: 300, Position: Vector2{100, 200}, ShipVariant: 3}
	got := mustEncode(t, actor)
	want := []byte{1, 5, 0x01, 0x2c, 0, 0, 0, 100, 0, 0, 0, 200, 3}
	if !bytes.Equal(got, want) {
		t.Fatalf("actor bytes = %v, want %v", got, want)
	}
}

func TestEncodeProjectileLayout(t *testing.T) {
	proj := &Projectile{Rotation: 256, Position: Vector2{1.9, 70000}}
	got := mustEncode(t, proj)
	want := []byte{0, 0x01, 0x00, 0, 0, 0, 1, 0, 0x01, 0x11, 0x70}
	if !bytes.Equal(got, want) {
		t.Fatalf("projectile bytes = %v, want %v", got, want)
	}
}

func TestActorRoundTrip(t *testing.T) {
	now := time.Unix(1000, 0)
	cases := []*Actor{
		{ID: 0, Rotation: 0, Position: Vector2{0, 0}, ShipVariant: 1},
		{ID: 255, Rotation: 65535, Position: Vector2{4294967295, 4294967295}, ShipVariant: 4},
		{ID: 17, Rotation: 629, Position: Vector2{1079, 699}, ShipVariant: 2},
	}
	for _, want := range cases {
		entity, err := Decode(mustEncode(t, want), now)
		if err != nil {
			t.Fatalf("decode %v: %v", want, err)
		}
		got, ok := entity.(*Actor)
		if !ok {
			t.Fatalf("decoded %T, want *Actor", entity)
		}
		if got.ID != want.ID || got.Rotation != want.Rotation || got.Position != want.Position || got.ShipVariant != want.ShipVariant {
			t.Fatalf("round trip = %v, want %v", got, want)
		}
		if !got.LastUpdate.Equal(now) {
			t.Fatalf("LastUpdate = %v, want %v", got.LastUpdate, now)
		}
	}
}

func TestProjectileRoundTripTruncates(t *testing.T) {
	now := time.Unix(1000, 0)
	entity, err := Decode(mustEncode(t, &Projectile{Rotation: 90, Position: Vector2{10.75, 20.2}}), now)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, ok := entity.(*Projectile)
	if !ok {
		t.Fatalf("decoded %T, want *Projectile", entity)
	}
	if got.Rotation != 90 || got.Position != (Vector2{10, 20}) {
		t.Fatalf("round trip = %v", got)
	}
	if !got.SpawnTime.Equal(now) {
		t.Fatalf("SpawnTime = %v, want %v", got.SpawnTime, now)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	actor := mustEncode(t, &Actor{ID: 1, ShipVariant: 1})
	proj := mustEncode(t, &Projectile{})

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrShortDatagram},
		{"short actor", actor[:12], ErrShortDatagram},
		{"short projectile", proj[:10], ErrShortDatagram},
		{"kind only", []byte{1}, ErrShortDatagram},
		{"unknown kind", []byte{2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, ErrUnknownKind},
		{"high kind", []byte{0xff}, ErrUnknownKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entity, err := Decode(tc.data, time.Now())
			if entity != nil {
				t.Fatalf("decoded %v from malformed datagram", entity)
			}
			if errors.Cause(err) != tc.want {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if !IsMalformed(err) {
				t.Fatalf("IsMalformed(%v) = false", err)
			}
		})
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	data := append(mustEncode(t, &Actor{ID: 9, Rotation: 45, Position: Vector2{3, 4}, ShipVariant: 2}), 0xde, 0xad)
	entity, err := Decode(data, time.Now())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if actor := entity.(*Actor); actor.ID != 9 || actor.ShipVariant != 2 {
		t.Fatalf("decoded %v", actor)
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	cases := []Entity{
		&Actor{Rotation: -1},
		&Actor{Rotation: 65536},
		&Actor{Position: Vector2{-1, 0}},
		&Projectile{Position: Vector2{0, 4294967296}},
	}
	for _, entity := range cases {
		if _, err := Encode(entity); errors.Cause(err) != ErrFieldRange {
			t.Fatalf("Encode(%v) err = %v, want ErrFieldRange", entity, err)
		}
	}
}

func TestEntityKindString(t *testing.T) {
	if kindActor.String() != "actor" || kindProjectile.String() != "projectile" {
		t.Fatalf("kind names = %q, %q", kindActor, kindProjectile)
	}
	if got := EntityKind(7).String(); got != "unknown(7)" {
		t.Fatalf("unknown kind = %q", got)
	}
}
