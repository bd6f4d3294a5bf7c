package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

//Config holds every tunable of a lanspace process
type Config struct {
	Port          int    //UDP port for sending and receiving
	ListenHost    string //Host the receive socket binds to
	BroadcastHost string //Where broadcasts are sent

	IDWindow      time.Duration //How long to listen before picking an actor id
	ActorTTL      time.Duration //Actors not refreshed within this are evicted
	ProjectileTTL time.Duration //Shots older than this are evicted
	MaxDrain      int           //Datagrams consumed per frame

	FPS         int
	ShipVariant uint8   //1-4, 0 picks one at random
	Field       Vector2 //Play field size

	ViewerAddr string //Websocket viewer listen address, empty disables it
	Profile    string //cpu, mem or empty
	LogLevel   int
}

//DefaultConfig returns the settings used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Port:          8080,
		ListenHost:    "0.0.0.0",
		BroadcastHost: "255.255.255.255",
		IDWindow:      1500 * time.Millisecond,
		ActorTTL:      30 * time.Millisecond,
		ProjectileTTL: 2 * time.Second,
		MaxDrain:      defaultMaxDrain,
		FPS:           60,
		Field:         Vector2{1080, 700},
		LogLevel:      2,
	}
}

//LoadConfig reads .env if there is one, then the LANSPACE_ environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env loaded: ", err)
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()
	var err error

	str := func(name string, dst *string) {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int, min, max int) {
		v := getenv(name)
		if v == "" || err != nil {
			return
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			err = errors.Wrapf(convErr, "%s", name)
			return
		}
		if n < min || n > max {
			err = errors.Errorf("%s must be between %d and %d, got %d", name, min, max, n)
			return
		}
		*dst = n
	}
	dur := func(name string, dst *time.Duration) {
		v := getenv(name)
		if v == "" || err != nil {
			return
		}
		d, parseErr := time.ParseDuration(v)
		if parseErr != nil {
			err = errors.Wrapf(parseErr, "%s", name)
			return
		}
		if d < 0 {
			err = errors.Errorf("%s must not be negative, got %s", name, d)
			return
		}
		*dst = d
	}

	str("LANSPACE_LISTEN_HOST", &cfg.ListenHost)
	str("LANSPACE_BROADCAST_HOST", &cfg.BroadcastHost)
	str("LANSPACE_VIEWER_ADDR", &cfg.ViewerAddr)
	str("LANSPACE_PROFILE", &cfg.Profile)
	num("LANSPACE_PORT", &cfg.Port, 0, 65535)
	num("LANSPACE_MAX_DRAIN", &cfg.MaxDrain, 1, 1<<16)
	num("LANSPACE_FPS", &cfg.FPS, 1, 1000)
	num("LANSPACE_LOG_LEVEL", &cfg.LogLevel, 0, 2)
	dur("LANSPACE_ID_WINDOW", &cfg.IDWindow)
	dur("LANSPACE_ACTOR_TTL", &cfg.ActorTTL)
	dur("LANSPACE_PROJECTILE_TTL", &cfg.ProjectileTTL)

	ship := int(cfg.ShipVariant)
	num("LANSPACE_SHIP", &ship, 0, 4)
	cfg.ShipVariant = uint8(ship)

	if err != nil {
		return nil, err
	}

	if v := getenv("LANSPACE_FIELD"); v != "" {
		field, fieldErr := parseField(v)
		if fieldErr != nil {
			return nil, errors.Wrap(fieldErr, "LANSPACE_FIELD")
		}
		cfg.Field = field
	}

	switch cfg.Profile {
	case "", "cpu", "mem":
	default:
		return nil, errors.Errorf("LANSPACE_PROFILE must be cpu or mem, got %q", cfg.Profile)
	}

	return cfg, nil
}

//parseField reads a WIDTHxHEIGHT pair such as 1080x700
func parseField(v string) (Vector2, error) {
	parts := strings.SplitN(strings.ToLower(v), "x", 2)
	if len(parts) != 2 {
		return Vector2{}, errors.Errorf("expected WIDTHxHEIGHT, got %q", v)
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Vector2{}, errors.Wrap(err, "width")
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Vector2{}, errors.Wrap(err, "height")
	}
	if w <= actorSize || h <= actorSize {
		return Vector2{}, errors.Errorf("field %dx%d is smaller than a ship", w, h)
	}
	return Vector2{float64(w), float64(h)}, nil
}
