package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/avstrong/meetingrooms/internal/booking"
	"github.com/avstrong/meetingrooms/internal/logger"
	"github.com/avstrong/meetingrooms/internal/rooms"
)

const maxBodyBytes = 1 << 20

type Server struct {
	srv      *http.Server
	router   *httprouter.Router
	l        *logger.Logger
	conf     Conf
	bManager *booking.Manager
	rooms    *rooms.Catalog
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	// StrictRooms rejects bookings for rooms missing from the catalog.
	StrictRooms bool
}

func New(ctx context.Context, conf Conf, bookingManager *booking.Manager, catalog *rooms.Catalog) (*Server, error) {
	router := httprouter.New()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           router,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:      srv,
		router:   router,
		l:        conf.L,
		conf:     conf,
		bManager: bookingManager,
		rooms:    catalog,
	}

	server.addRoutes(router)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}

func (s *Server) Handler() http.Handler {
	return s.router
}
