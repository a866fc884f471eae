package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/avstrong/meetingrooms/internal/booking"
)

// DB keeps the booking collection in process memory. Everything is lost on
// restart.
type DB struct {
	mu          sync.Mutex
	bookings    []booking.Booking
	initialized bool
}

func New() *DB {
	//nolint:exhaustruct
	return &DB{}
}

func (db *DB) Exists(_ context.Context) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.initialized
}

func (db *DB) ReadAll(_ context.Context) []booking.Booking {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.bookings == nil {
		return []booking.Booking{}
	}

	return slices.Clone(db.bookings)
}

func (db *DB) WriteAll(_ context.Context, bookings []booking.Booking) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.bookings = slices.Clone(bookings)
	if db.bookings == nil {
		db.bookings = []booking.Booking{}
	}

	db.initialized = true

	return nil
}
