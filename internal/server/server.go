package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	appplayers "github.com/preston-bernstein/player-records-service/internal/app/players"
	"github.com/preston-bernstein/player-records-service/internal/config"
	httpserver "github.com/preston-bernstein/player-records-service/internal/http"
	"github.com/preston-bernstein/player-records-service/internal/http/handlers"
	"github.com/preston-bernstein/player-records-service/internal/http/middleware"
	"github.com/preston-bernstein/player-records-service/internal/logging"
	"github.com/preston-bernstein/player-records-service/internal/metrics"
	"github.com/preston-bernstein/player-records-service/internal/poller"
	"github.com/preston-bernstein/player-records-service/internal/providers"
)

var metricsSetup = metrics.Setup

// Poller is the refresh loop as seen by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// Server owns the HTTP and metrics listeners and, when the dataset cache is on, its refresh poller.
type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	playersService *appplayers.Service
	httpServer     httpServer
	metricsServer  httpServer
	poller         Poller
	metricsStop    func(context.Context) error
}

// New constructs a server with default provider wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DatasetProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DatasetProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	factory := newProviderFactory(logger, recorder)
	var chain providerChain
	if provider == nil {
		chain = factory.build(cfg)
	} else {
		chain = factory.wrap(cfg, provider)
	}

	playerSvc := appplayers.NewService(chain.provider, logger, recorder)
	var plr Poller
	if chain.cache != nil {
		plr = poller.New(chain.cache, logger, recorder, cfg.Dataset.RefreshInterval)
	}
	httpSrv := buildHTTPServer(cfg, playerSvc, logger, recorder, plr)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		playersService: playerSvc,
		httpServer:     httpSrv,
		metricsServer:  metricsSrv,
		poller:         plr,
		metricsStop:    metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, playerSvc *appplayers.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:            cfg,
		logger:         logger,
		playersService: playerSvc,
		httpServer:     httpSrv,
		poller:         plr,
	}
}

func buildHTTPServer(cfg config.Config, playerSvc *appplayers.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	info := handlers.ServiceInfo{Name: config.ServiceName, Version: cfg.Version}
	handler := handlers.NewHandler(playerSvc, info, logger, statusFn)

	var admin *handlers.AdminHandler
	if cfg.HTTP.AdminToken != "" {
		admin = handlers.NewAdminHandler(playerSvc, cfg.HTTP.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, middleware.CORS(cfg.HTTP.AllowedOrigins, router))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  orDefault(cfg.HTTP.ReadTimeout, defaultReadTimeout),
		WriteTimeout: orDefault(cfg.HTTP.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), orDefault(s.cfg.HTTP.ShutdownTimeout, shutdownTimeout))
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}
	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
