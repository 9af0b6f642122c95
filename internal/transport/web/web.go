package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avstrong/rental/internal/booking"
	"github.com/avstrong/rental/internal/catalog"
	"github.com/avstrong/rental/internal/logger"
)

const featuredCount = 3

type Server struct {
	srv      *http.Server
	router   *http.ServeMux
	l        *logger.Logger
	conf     Conf
	bManager *booking.Manager
	catalog  *catalog.Catalog
	metrics  *metrics
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	AllowedOrigins    []string
	// Registerer defaults to a fresh registry so several servers can coexist.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

func New(ctx context.Context, conf Conf, bookingManager *booking.Manager, cat *catalog.Catalog) (*Server, error) {
	mux := http.NewServeMux()

	if conf.Registerer == nil || conf.Gatherer == nil {
		reg := prometheus.NewRegistry()
		conf.Registerer, conf.Gatherer = reg, reg
	}

	m, err := newMetrics(conf.Registerer)
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   conf.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Location", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, //nolint:gomnd
	})

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           corsHandler(mux),
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:      srv,
		router:   mux,
		l:        conf.L,
		conf:     conf,
		bManager: bookingManager,
		catalog:  cat,
		metrics:  m,
	}

	server.addRoutes(mux)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}
