package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/avstrong/meetingrooms/internal/booking"
	"github.com/avstrong/meetingrooms/internal/clock"
	"github.com/avstrong/meetingrooms/internal/config"
	"github.com/avstrong/meetingrooms/internal/idgen/timeuuid"
	"github.com/avstrong/meetingrooms/internal/logger"
	"github.com/avstrong/meetingrooms/internal/migration"
	"github.com/avstrong/meetingrooms/internal/storage/file"
	"github.com/avstrong/meetingrooms/internal/storage/memory"
	"github.com/avstrong/meetingrooms/internal/transport/web"
)

type store interface {
	Exists(ctx context.Context) bool
	ReadAll(ctx context.Context) []booking.Booking
	WriteAll(ctx context.Context, bookings []booking.Booking) error
}

func newStorage(l *logger.Logger, conf *config.Config) store {
	if conf.Storage == config.StorageMemory {
		l.LogInfo("Using in-memory booking storage")

		return memory.New()
	}

	l.LogInfo("Using booking file %v", conf.DataFile)

	return file.New(file.Config{L: l, Path: conf.DataFile})
}

func Run(l *logger.Logger, conf *config.Config) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	storage := newStorage(l, conf)
	if err := migration.Up(ctx, l, storage); err != nil {
		return fmt.Errorf("prepare storage: %w", err)
	}

	bookManager := booking.New(l, storage, timeuuid.New(), clock.New())

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      l.StdLog(),
		Host:              conf.Host,
		Port:              conf.Port,
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		LivenessEndpoint:  conf.LivenessEndpoint,
		StrictRooms:       conf.StrictRooms,
	}

	srv, err := web.New(ctx, webConf, bookManager, conf.Rooms)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		l.LogErrorf("Failed to run http server: %v", err.Error())

		cancel()
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
