package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/avstrong/rental/internal/booking"
	"github.com/avstrong/rental/internal/config"
	"github.com/avstrong/rental/internal/idgen/random"
	"github.com/avstrong/rental/internal/logger"
	"github.com/avstrong/rental/internal/migration"
	"github.com/avstrong/rental/internal/pricing"
	"github.com/avstrong/rental/internal/storage/memory"
	"github.com/avstrong/rental/internal/storage/redis"
	"github.com/avstrong/rental/internal/transport/web"
)

const sweepInterval = time.Minute

func Run(conf *config.Config, l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	cat, err := migration.Up(l)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	storage := memory.New(memory.Config{L: l, TTL: conf.Session.TTL})

	go storage.RunSweeper(ctx, sweepInterval)

	bConf := booking.Config{
		L:           l,
		Sessions:    storage,
		Flows:       storage,
		Catalog:     cat,
		IDGenerator: random.New(),
		Quoter:      pricing.NewCalculator(0),
		Guard:       booking.PermissiveGuard{},
	}

	if conf.Booking.StrictSteps {
		bConf.Guard = booking.StrictGuard{}
	}

	if conf.Session.Store == config.SessionStoreRedis {
		sessions, err := redis.Connect(ctx, redis.Config{URL: conf.Session.RedisURL, TTL: conf.Session.TTL})
		if err != nil {
			return fmt.Errorf("connect session store: %w", err)
		}

		defer func() {
			if err := sessions.Close(); err != nil {
				l.LogErrorf("Failed to close session store: %v", err.Error())
			}
		}()

		bConf.Sessions = sessions
	}

	l.LogInfo("Sessions are kept in %v store", conf.Session.Store)

	bookManager := booking.New(bConf)

	webConf := web.Conf{ //nolint:exhaustruct
		L:                 l,
		ServerLogger:      l.Std(),
		Host:              conf.HTTP.Host,
		Port:              conf.HTTP.Port,
		ReadHeaderTimeout: conf.HTTP.ReadHeaderTimeout,
		LivenessEndpoint:  "/liveness",
		AllowedOrigins:    conf.HTTP.AllowedOrigins,
	}

	srv, err := web.New(ctx, webConf, bookManager, cat)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*4) //nolint:gomnd
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
