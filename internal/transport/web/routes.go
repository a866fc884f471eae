package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/avstrong/meetingrooms/internal/booking"
	"github.com/avstrong/meetingrooms/internal/rooms"
)

const (
	bookingsPath = "/api/bookings"
	roomsPath    = "/api/rooms"
)

type roomsResponse struct {
	Rooms  []rooms.Room `json:"rooms"`
	Slots  []string     `json:"slots"`
	Strict bool         `json:"strict"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, resp := classify(err)
	if status == http.StatusInternalServerError {
		s.l.LogErrorf("Could not process booking request: %v", err.Error())
	}

	s.writeJSON(w, status, resp)
}

func (s *Server) checkRequest(w http.ResponseWriter, r *http.Request) (*booking.Candidate, bool) {
	var input booking.Candidate

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		//nolint:exhaustruct
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    codeBadRequest,
			Message: "Request body must be a JSON booking object.",
		})

		return nil, false
	}

	// Room membership is checked only once the candidate is otherwise
	// valid so that field errors keep their order.
	if s.conf.StrictRooms && booking.Validate(input) == nil && !s.rooms.Has(input.Room) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    codeInvalidRoom,
			Message: fmt.Sprintf("Unknown room '%v'.", input.Room),
			Field:   "room",
		})

		return nil, false
	}

	return &input, true
}

func (s *Server) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.bManager.List(r.Context()))
}

func (s *Server) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	input, ok := s.checkRequest(w, r)
	if !ok {
		return
	}

	out, err := s.bManager.Create(r.Context(), *input)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusCreated, out)
}

func (s *Server) deleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}

	if id == "" {
		//nolint:exhaustruct
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    codeBadRequest,
			Message: "Booking id is required.",
		})

		return
	}

	if err := s.bManager.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) roomsHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, roomsResponse{
		Rooms:  s.rooms.Rooms(),
		Slots:  rooms.Slots(),
		Strict: s.conf.StrictRooms,
	})
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *httprouter.Router) {
	handle := func(method, path string, h http.HandlerFunc) {
		r.Handler(method, path, s.applyMiddlewares(
			h,
			s.loggerMiddleware(),
			s.recoverMiddleware(),
			s.tracingMiddleware(),
			s.requestIDMiddleware(),
		))
	}

	handle(http.MethodGet, bookingsPath, s.listBookingsHandler)
	handle(http.MethodPost, bookingsPath, s.createBookingHandler)
	handle(http.MethodDelete, bookingsPath, s.deleteBookingHandler)
	handle(http.MethodDelete, bookingsPath+"/:id", s.deleteBookingHandler)
	handle(http.MethodGet, roomsPath, s.roomsHandler)
	handle(http.MethodGet, s.conf.LivenessEndpoint, s.livenessHandler)
}
