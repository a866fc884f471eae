package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/avstrong/meetingrooms/internal/booking"
	"github.com/avstrong/meetingrooms/internal/idgen/timeuuid"
	"github.com/avstrong/meetingrooms/internal/logger"
	"github.com/avstrong/meetingrooms/internal/rooms"
	"github.com/avstrong/meetingrooms/internal/storage/memory"
	"github.com/avstrong/meetingrooms/internal/transport/web"
)

type stubClock struct{}

func (stubClock) Now() time.Time {
	return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
}

type brokenStorage struct {
	*memory.DB
}

func (brokenStorage) WriteAll(_ context.Context, _ []booking.Booking) error {
	return errors.New("read-only file system")
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

type storage interface {
	ReadAll(ctx context.Context) []booking.Booking
	WriteAll(ctx context.Context, bookings []booking.Booking) error
}

func newHandler(t *testing.T, s storage, strict bool) http.Handler {
	t.Helper()

	return newHandlerWithLogger(t, logger.NewNop(), s, strict)
}

func newHandlerWithLogger(t *testing.T, l *logger.Logger, s storage, strict bool) http.Handler {
	t.Helper()

	catalog, err := rooms.Parse(rooms.DefaultList)
	require.NoError(t, err)

	m := booking.New(l, s, timeuuid.New(), stubClock{})

	srv, err := web.New(context.Background(), web.Conf{
		L:                l,
		ServerLogger:     l.StdLog(),
		Host:             "localhost",
		Port:             "0",
		LivenessEndpoint: "/liveness",
		StrictRooms:      strict,
	}, m, catalog)
	require.NoError(t, err)

	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))

	return rec
}

func candidate(start, end string) map[string]string {
	return map[string]string{
		"room":        "room1",
		"date":        "2024-06-01",
		"startTime":   start,
		"endTime":     end,
		"pic":         "Alice",
		"meetingName": "Standup",
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestCreateListDelete(t *testing.T) {
	h := newHandler(t, memory.New(), false)

	rec := do(t, h, http.MethodPost, "/api/bookings", candidate("09:00", "10:00"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var created booking.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	rec = do(t, h, http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []booking.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rec = do(t, h, http.MethodDelete, "/api/bookings/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/bookings", nil)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDeleteByQuery(t *testing.T) {
	h := newHandler(t, memory.New(), false)

	rec := do(t, h, http.MethodPost, "/api/bookings", candidate("09:00", "10:00"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created booking.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, h, http.MethodDelete, "/api/bookings?id="+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/bookings", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorClasses(t *testing.T) {
	h := newHandler(t, memory.New(), false)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/bookings", candidate("09:00", "10:00")).Code)

	missing := candidate("09:00", "10:00")
	missing["pic"] = ""

	tests := []struct {
		name       string
		method     string
		target     string
		body       any
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name: "missing field", method: http.MethodPost, target: "/api/bookings", body: missing,
			wantStatus: http.StatusBadRequest, wantCode: "missing_field", wantField: "pic",
		},
		{
			name: "invalid time", method: http.MethodPost, target: "/api/bookings", body: candidate("9:30", "10:00"),
			wantStatus: http.StatusBadRequest, wantCode: "invalid_time_format", wantField: "startTime",
		},
		{
			name: "invalid range", method: http.MethodPost, target: "/api/bookings", body: candidate("11:00", "10:00"),
			wantStatus: http.StatusBadRequest, wantCode: "invalid_time_range", wantField: "endTime",
		},
		{
			name: "overlap", method: http.MethodPost, target: "/api/bookings", body: candidate("09:00", "11:00"),
			wantStatus: http.StatusConflict, wantCode: "overlap",
		},
		{
			name: "not json", method: http.MethodPost, target: "/api/bookings", body: "text",
			wantStatus: http.StatusBadRequest, wantCode: "bad_request",
		},
		{
			name: "unknown id", method: http.MethodDelete, target: "/api/bookings/nope",
			wantStatus: http.StatusNotFound, wantCode: "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)

			require.Equal(t, tt.wantStatus, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantField, body.Field)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestPersistenceFailureIsServerFault(t *testing.T) {
	h := newHandler(t, brokenStorage{DB: memory.New()}, false)

	rec := do(t, h, http.MethodPost, "/api/bookings", candidate("09:00", "10:00"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal", decodeError(t, rec).Code)

	rec = do(t, h, http.MethodGet, "/api/bookings", nil)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestStrictRooms(t *testing.T) {
	h := newHandler(t, memory.New(), true)

	unknown := candidate("09:00", "10:00")
	unknown["room"] = "boardroom"

	rec := do(t, h, http.MethodPost, "/api/bookings", unknown)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_room", decodeError(t, rec).Code)

	// Field errors still win over the room check.
	unknown["date"] = ""
	rec = do(t, h, http.MethodPost, "/api/bookings", unknown)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_field", decodeError(t, rec).Code)

	rec = do(t, h, http.MethodPost, "/api/bookings", candidate("09:00", "10:00"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUnknownRoomsAllowedByDefault(t *testing.T) {
	h := newHandler(t, memory.New(), false)

	c := candidate("09:00", "10:00")
	c["room"] = "boardroom"

	assert.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/bookings", c).Code)
}

func TestRooms(t *testing.T) {
	h := newHandler(t, memory.New(), false)

	rec := do(t, h, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rooms  []rooms.Room `json:"rooms"`
		Slots  []string     `json:"slots"`
		Strict bool         `json:"strict"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Len(t, body.Rooms, 3)
	assert.Equal(t, "zoom", body.Rooms[0].ID)
	assert.Equal(t, rooms.Slots(), body.Slots)
	assert.False(t, body.Strict)
}

func TestLivenessAndMethodNotAllowed(t *testing.T) {
	h := newHandler(t, memory.New(), false)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodGet, "/liveness", nil).Code)

	rec := do(t, h, http.MethodPut, "/api/bookings", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodPost)
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newHandler(t, memory.New(), false)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("X-Request-Id", "abc-123")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestAccessLogCarriesTraceID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := newHandlerWithLogger(t, logger.New(zap.New(core)), memory.New(), false)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	req.Header.Set("X-Request-Id", "abc-123")

	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessageSnippet("type: access").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "traceID: 4bf92f35-77b3-4da6-a3ce-929d0e0e4736")
	assert.Contains(t, entries[0].Message, "requestID: abc-123")
}

func TestAccessLogWithoutTraceparent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := newHandlerWithLogger(t, logger.New(zap.New(core)), memory.New(), false)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	entries := logs.FilterMessageSnippet("type: access").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "traceID: ,")
}
