package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JoshuaDoes/logger"
	"github.com/pkg/profile"
)

var (
	log        = logger.NewLogger("lanspace", 2)
	randomizer = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log = logger.NewLogger("lanspace", cfg.LogLevel)

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sc
		log.Trace("Signal received!")
		cancel()
	}()

	transport := NewTransport(cfg)
	if err := transport.Open(); err != nil {
		log.Fatal(err)
	}
	defer transport.Close()

	log.Info("Listening for ", cfg.IDWindow, " to find a free actor id...")
	id, err := NewIdentityAllocator(transport, cfg).Allocate(ctx)
	if err != nil {
		transport.Close()
		log.Fatal("unable to allocate an actor id: ", err)
	}
	log.Info("Playing as actor ", id)

	variant := cfg.ShipVariant
	if variant == 0 {
		variant = uint8(randomizer.Intn(4) + 1)
	}
	spawn := Vector2{
		X: randomizer.Float64() * cfg.Field.X,
		Y: randomizer.Float64() * cfg.Field.Y,
	}
	ship := NewShip(id, variant, spawn, cfg.Field)
	ship.Move(Vector2{}) //Pull the spawn inside the border

	world := NewWorld(id, cfg)
	session := NewSession(transport, world, ship, NewAutoPilot(cfg.Field), cfg)
	session.AddRenderer(newLogRenderer(world))

	if cfg.ViewerAddr != "" {
		viewer := NewViewer(cfg.ViewerAddr)
		if err := viewer.Start(); err != nil {
			transport.Close()
			log.Fatal(err)
		}
		defer viewer.Close()
		session.AddRenderer(viewer)
	}

	if err := session.Run(ctx); err != nil && err != context.Canceled {
		log.Error(err)
	}
}

//newLogRenderer logs whenever the number of live remote actors changes
func newLogRenderer(world *World) Renderer {
	lastActors := -1
	return RenderFunc(func(frame *Frame) {
		actors := world.GetActorCount()
		if actors != lastActors {
			log.Debug("Frame ", frame.Number, ": ", actors, " remote actors, ", len(frame.Entities)-actors, " projectiles")
			lastActors = actors
		}
	})
}
