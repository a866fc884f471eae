package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/avstrong/meetingrooms/internal/rooms"
)

const (
	EnvEnvironment       = "BOOKING_ENV"
	EnvHost              = "BOOKING_HOST"
	EnvPort              = "BOOKING_PORT"
	EnvStorage           = "BOOKING_STORAGE"
	EnvDataFile          = "BOOKING_DATA_FILE"
	EnvReadHeaderTimeout = "BOOKING_READ_HEADER_TIMEOUT"
	EnvShutdownTimeout   = "BOOKING_SHUTDOWN_TIMEOUT"
	EnvRooms             = "BOOKING_ROOMS"
	EnvStrictRooms       = "BOOKING_STRICT_ROOMS"
	EnvLivenessEndpoint  = "BOOKING_LIVENESS_ENDPOINT"

	StorageFile   = "file"
	StorageMemory = "memory"

	defaultEnvironment       = "development"
	defaultHost              = "localhost"
	defaultPort              = "8092"
	defaultDataFile          = "data/bookings.json"
	defaultReadHeaderTimeout = 20 * time.Second
	defaultShutdownTimeout   = 4 * time.Second
	defaultLivenessEndpoint  = "/liveness"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Environment       string
	Host              string
	Port              string
	Storage           string
	DataFile          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Rooms             *rooms.Catalog
	StrictRooms       bool
	LivenessEndpoint  string
}

// Load reads envFile into the process environment when it exists and builds
// the configuration from environment variables. Pass "" to skip the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %v: %w", envFile, err)
		}
	}

	var problems []string

	readHeaderTimeout, err := duration(EnvReadHeaderTimeout, defaultReadHeaderTimeout)
	if err != nil {
		problems = append(problems, err.Error())
	}

	shutdownTimeout, err := duration(EnvShutdownTimeout, defaultShutdownTimeout)
	if err != nil {
		problems = append(problems, err.Error())
	}

	strictRooms, err := boolean(EnvStrictRooms, false)
	if err != nil {
		problems = append(problems, err.Error())
	}

	catalog, err := rooms.Parse(str(EnvRooms, rooms.DefaultList))
	if err != nil {
		problems = append(problems, fmt.Sprintf("%s: %v", EnvRooms, err))
	}

	cfg := &Config{
		Environment:       str(EnvEnvironment, defaultEnvironment),
		Host:              str(EnvHost, defaultHost),
		Port:              str(EnvPort, defaultPort),
		Storage:           strings.ToLower(str(EnvStorage, StorageFile)),
		DataFile:          str(EnvDataFile, defaultDataFile),
		ReadHeaderTimeout: readHeaderTimeout,
		ShutdownTimeout:   shutdownTimeout,
		Rooms:             catalog,
		StrictRooms:       strictRooms,
		LivenessEndpoint:  str(EnvLivenessEndpoint, defaultLivenessEndpoint),
	}

	problems = append(problems, cfg.validate()...)

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	return cfg, nil
}

func (cfg *Config) validate() []string {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("%s must be between 1 and 65535, got: %s", EnvPort, cfg.Port))
	}

	switch cfg.Storage {
	case StorageFile:
		if cfg.DataFile == "" {
			problems = append(problems, fmt.Sprintf("%s cannot be empty for file storage", EnvDataFile))
		}
	case StorageMemory:
	default:
		problems = append(problems, fmt.Sprintf("%s must be %q or %q, got: %s", EnvStorage, StorageFile, StorageMemory, cfg.Storage))
	}

	if !strings.HasPrefix(cfg.LivenessEndpoint, "/") {
		problems = append(problems, fmt.Sprintf("%s must start with '/', got: %s", EnvLivenessEndpoint, cfg.LivenessEndpoint))
	}

	return problems
}

func str(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := str(key, "")
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got: %s", key, v)
	}

	return d, nil
}

func boolean(key string, fallback bool) (bool, error) {
	v := str(key, "")
	if v == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got: %s", key, v)
	}

	return b, nil
}
