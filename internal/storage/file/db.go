package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2"

	"github.com/avstrong/meetingrooms/internal/booking"
	"github.com/avstrong/meetingrooms/internal/logger"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

type Config struct {
	L    *logger.Logger
	Path string
}

// DB stores the whole booking collection as one JSON array. Every write
// replaces the file through a temp file and rename.
type DB struct {
	mu   sync.Mutex
	l    *logger.Logger
	path string
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:    conf.L,
		path: conf.Path,
	}
}

func (db *DB) Path() string {
	return db.path
}

func (db *DB) Exists(_ context.Context) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := os.Stat(db.path)

	return err == nil
}

// ReadAll never fails: a missing file reads as an empty collection, and an
// unreadable or corrupt one is logged and read as empty too.
func (db *DB) ReadAll(_ context.Context) []booking.Booking {
	db.mu.Lock()
	defer db.mu.Unlock()

	data, err := os.ReadFile(db.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []booking.Booking{}
	}

	if err != nil {
		db.l.LogErrorf("Could not read bookings file %v: %v", db.path, err.Error())

		return []booking.Booking{}
	}

	var bookings []booking.Booking

	if err := json.Unmarshal(data, &bookings); err != nil {
		db.l.LogErrorf("Could not decode bookings file %v: %v", db.path, err.Error())

		return []booking.Booking{}
	}

	if bookings == nil {
		return []booking.Booking{}
	}

	return bookings
}

func (db *DB) WriteAll(_ context.Context, bookings []booking.Booking) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if bookings == nil {
		bookings = []booking.Booking{}
	}

	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(db.path), dirPerm); err != nil {
		return fmt.Errorf("create data directory for %v: %w", db.path, err)
	}

	if err := renameio.WriteFile(db.path, data, filePerm); err != nil {
		return fmt.Errorf("write bookings file %v: %w", db.path, err)
	}

	return nil
}
