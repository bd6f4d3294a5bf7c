package main

import (
	"testing"
	"time"
)

func TestShipMoveClampsToField(t *testing.T) {
	ship := NewShip(1, 1, Vector2{25, 25}, Vector2{1080, 700})
	ship.Move(Vector2{-1, -1})
	if ship.Position != (Vector2{21, 21}) {
		t.Fatalf("position = %v, want {21 21}", ship.Position)
	}

	ship.Position = Vector2{1075, 695}
	ship.Move(Vector2{1, 0})
	if ship.Position != (Vector2{1059, 679}) {
		t.Fatalf("position = %v, want {1059 679}", ship.Position)
	}
}

func TestShipMoveNormalizesDiagonal(t *testing.T) {
	ship := NewShip(1, 1, Vector2{500, 350}, Vector2{1080, 700})
	ship.Move(Vector2{1, 1})
	if moved := ship.Position.Sub(Vector2{500, 350}).Magnitude(); moved < shipVelocity-1e-9 || moved > shipVelocity+1e-9 {
		t.Fatalf("moved %v, want %v", moved, shipVelocity)
	}
}

func TestShipAim(t *testing.T) {
	ship := NewShip(1, 1, Vector2{100, 100}, Vector2{1080, 700})
	cases := []struct {
		target Vector2
		want   int
	}{
		{Vector2{200, 100}, 450}, //Right
		{Vector2{100, 200}, 360}, //Down
		{Vector2{0, 100}, 270},   //Left
		{Vector2{100, 0}, 540},   //Up
	}
	for _, tc := range cases {
		ship.Aim(tc.target)
		if ship.Rotation != tc.want {
			t.Fatalf("Aim(%v) rotation = %d, want %d", tc.target, ship.Rotation, tc.want)
		}
		dir := heading(ship.Rotation)
		toTarget := tc.target.Sub(ship.Position).Normalize()
		if dir.Sub(toTarget).Magnitude() > 1e-9 {
			t.Fatalf("heading %v does not face %v", dir, toTarget)
		}
	}
}

func TestMuzzleSpawnsAhead(t *testing.T) {
	ship := NewShip(1, 1, Vector2{100, 100}, Vector2{1080, 700})
	ship.Aim(Vector2{200, 100})
	proj := ship.Muzzle()
	if proj.Rotation != ship.Rotation {
		t.Fatalf("projectile rotation = %d, want %d", proj.Rotation, ship.Rotation)
	}
	if d := proj.Position.Sub(Vector2{140, 100}).Magnitude(); d > 1e-9 {
		t.Fatalf("muzzle at %v, want {140 100}", proj.Position)
	}
}

func TestReceivedProjectileKeepsFlying(t *testing.T) {
	//Fired to the right, the receiver flips it 180 and Advance moves against its rotation
	world, _ := newTestWorld(0)
	world.Ingest(mustEncode(t, &Projectile{Rotation: 450, Position: Vector2{140, 100}}))
	proj := world.Snapshot()[0].(*Projectile)

	proj.Advance(projectileSpeed)
	if d := proj.Position.Sub(Vector2{155, 100}).Magnitude(); d > 1e-9 {
		t.Fatalf("projectile at %v, want {155 100}", proj.Position)
	}
}

func TestCollides(t *testing.T) {
	ship := NewShip(1, 1, Vector2{500, 350}, Vector2{1080, 700})
	if !Collides(ship, &Projectile{Position: Vector2{500, 350}}) {
		t.Fatalf("shot at ship center missed")
	}
	if Collides(ship, &Projectile{Position: Vector2{600, 350}}) {
		t.Fatalf("distant shot hit")
	}
	//The shot's corner is tested, so a shot just left of the box still misses
	if Collides(ship, &Projectile{Position: Vector2{489.5, 350}}) {
		t.Fatalf("shot on the left edge hit")
	}
}

func TestGunCadence(t *testing.T) {
	gun := NewGun()
	now := time.Unix(100, 0)

	for shot := 1; shot <= defaultMagazine; shot++ {
		if !gun.TryFire(now) {
			t.Fatalf("shot %d refused", shot)
		}
		if gun.TryFire(now.Add(10 * time.Millisecond)) {
			t.Fatalf("shot %d allowed inside the fire rate", shot)
		}
		now = now.Add(60 * time.Millisecond)
	}

	//Magazine empty, reloading
	reloadStart := now.Add(-60 * time.Millisecond)
	if gun.TryFire(reloadStart.Add(400 * time.Millisecond)) {
		t.Fatalf("fired while reloading")
	}
	if !gun.TryFire(reloadStart.Add(510 * time.Millisecond)) {
		t.Fatalf("refused after reload")
	}
}

func TestShipDieRespawn(t *testing.T) {
	ship := NewShip(1, 1, Vector2{100, 100}, Vector2{1080, 700})
	ship.Die()
	if ship.Alive {
		t.Fatalf("ship alive after Die")
	}
	ship.Respawn()
	if !ship.Alive {
		t.Fatalf("ship dead after Respawn")
	}
}
