package migration

import (
	"context"
	"fmt"

	"github.com/avstrong/meetingrooms/internal/booking"
	"github.com/avstrong/meetingrooms/internal/logger"
)

type storage interface {
	Exists(ctx context.Context) bool
	WriteAll(ctx context.Context, bookings []booking.Booking) error
}

// Up prepares a storage that has never been written by saving an empty
// collection. An existing collection is left untouched.
func Up(ctx context.Context, l *logger.Logger, storage storage) error {
	if storage.Exists(ctx) {
		l.LogInfo("Booking storage already initialized")

		return nil
	}

	if err := storage.WriteAll(ctx, []booking.Booking{}); err != nil {
		return fmt.Errorf("initialize booking storage: %w", err)
	}

	l.LogInfo("Booking storage has been initialized")

	return nil
}
