package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/avstrong/meetingrooms/internal/logger"
)

const tracerName = "github.com/avstrong/meetingrooms/internal/booking"

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

type clock interface {
	Now() time.Time
}

type storageReader interface {
	ReadAll(ctx context.Context) []Booking
}

type storageWriter interface {
	WriteAll(ctx context.Context, bookings []Booking) error
}

type storage interface {
	storageReader
	storageWriter
}

type Manager struct {
	// mu serialises read-modify-write cycles within this process only.
	mu          sync.Mutex
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	clock       clock
	tracer      trace.Tracer
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator, clock clock) *Manager {
	//nolint:exhaustruct
	return &Manager{
		l:           l,
		storage:     storage,
		idGenerator: idGenerator,
		clock:       clock,
		tracer:      otel.Tracer(tracerName),
	}
}

// FindOverlap returns the first booking in collection order that shares the
// candidate's room and date and whose [start, end) interval intersects it.
// Touching intervals do not overlap.
func FindOverlap(c Candidate, existing []Booking) (Booking, bool) {
	for _, b := range existing {
		if b.Room != c.Room || b.Date != c.Date {
			continue
		}

		if c.StartTime < b.EndTime && c.EndTime > b.StartTime {
			return b, true
		}
	}

	//nolint:exhaustruct
	return Booking{}, false
}

// Insert returns a new collection with b appended. existing is left as is.
func Insert(existing []Booking, b Booking) []Booking {
	res := make([]Booking, 0, len(existing)+1)
	res = append(res, existing...)

	return append(res, b)
}

// Remove returns a new collection without the booking identified by id.
func Remove(existing []Booking, id string) ([]Booking, error) {
	for idx, b := range existing {
		if b.ID != id {
			continue
		}

		res := make([]Booking, 0, len(existing)-1)
		res = append(res, existing[:idx]...)

		return append(res, existing[idx+1:]...), nil
	}

	return nil, fmt.Errorf("booking %q: %w", id, ErrNotFound)
}

func (m *Manager) buildBooking(ctx context.Context, c Candidate) (Booking, error) {
	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		//nolint:exhaustruct
		return Booking{}, fmt.Errorf("%w: %w", ErrNextID, err)
	}

	now := m.clock.Now().UTC()

	return Booking{
		ID:          id,
		Room:        c.Room,
		Date:        c.Date,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Pic:         c.Pic,
		MeetingName: c.MeetingName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (m *Manager) List(ctx context.Context) []Booking {
	ctx, span := m.tracer.Start(ctx, "booking.List")
	defer span.End()

	bookings := m.storage.ReadAll(ctx)
	span.SetAttributes(attribute.Int("booking.count", len(bookings)))

	return bookings
}

func (m *Manager) Create(ctx context.Context, c Candidate) (_ *Booking, err error) {
	ctx, span := m.tracer.Start(ctx, "booking.Create", trace.WithAttributes(
		attribute.String("booking.room", c.Room),
		attribute.String("booking.date", c.Date),
	))
	defer func() { endSpan(span, err) }()

	if err := Validate(c); err != nil {
		return nil, err
	}

	c = Normalize(c)

	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.storage.ReadAll(ctx)

	if conflict, found := FindOverlap(c, existing); found {
		return nil, &OverlapError{conflict: conflict}
	}

	b, err := m.buildBooking(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("build booking: %w", err)
	}

	if err := m.storage.WriteAll(ctx, Insert(existing, b)); err != nil {
		return nil, fmt.Errorf("%w: save booking %v: %w", ErrPersistence, b.ID, err)
	}

	m.l.LogInfo(
		"Booking %v created for room %v on %v %v-%v%s",
		b.ID, b.Room, b.Date, b.StartTime, b.EndTime, requestSuffix(ctx),
	)

	return &b, nil
}

func (m *Manager) Delete(ctx context.Context, id string) (err error) {
	ctx, span := m.tracer.Start(ctx, "booking.Delete", trace.WithAttributes(
		attribute.String("booking.id", id),
	))
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	remaining, err := Remove(m.storage.ReadAll(ctx), id)
	if err != nil {
		return err
	}

	if err := m.storage.WriteAll(ctx, remaining); err != nil {
		return fmt.Errorf("%w: delete booking %v: %w", ErrPersistence, id, err)
	}

	m.l.LogInfo("Booking %v deleted%s", id, requestSuffix(ctx))

	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) && IsValidationError(err) == nil && IsOverlapError(err) == nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

func requestSuffix(ctx context.Context) string {
	if id, ok := RequestIDFromContext(ctx); ok && id != "" {
		return fmt.Sprintf(", requestID: %s", id)
	}

	return ""
}
