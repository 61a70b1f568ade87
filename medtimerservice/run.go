package medtimerservice

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medtimer/medtimer-server/internal/api"
	"github.com/medtimer/medtimer-server/internal/config"
	"github.com/medtimer/medtimer-server/internal/factory"
	"github.com/medtimer/medtimer-server/internal/health"
	"github.com/medtimer/medtimer-server/internal/logger"
	"github.com/medtimer/medtimer-server/internal/services"
	"github.com/medtimer/medtimer-server/internal/store"
)

const (
	serviceName     = "medtimer-server"
	shutdownTimeout = 10 * time.Second
)

// Options carry command-line overrides on top of the environment.
type Options struct {
	// Addr overrides HTTP_ADDR when set.
	Addr            string
	BootstrapSchema bool
	Version         string
}

// Run loads configuration from the environment, starts the HTTP server and
// blocks until SIGINT/SIGTERM or a server error.
func Run(opts Options) error {
	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	level, _ := cfg.Level()
	lg := logger.New(serviceName, level)
	log.Logger = lg

	ctx, stop := newServerContext()
	defer stop()

	return Serve(ctx, cfg, lg, opts, nil)
}

// Serve runs the service with an explicit configuration until ctx is done.
// When ln is nil it listens on the configured address.
func Serve(ctx context.Context, cfg *config.Config, lg zerolog.Logger, opts Options, ln net.Listener) error {
	addr := cfg.HTTPAddr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	lg.Info().
		Str("db_driver", cfg.DBDriver).
		Str("http_addr", addr).
		Str("logging_level", cfg.LoggingLevel).
		Dur("query_timeout", cfg.QueryTimeout).
		Int("max_open_conns", cfg.MaxOpenConns).
		Str("version", opts.Version).
		Msg("medtimer service starting")

	st, db, err := factory.NewStore(ctx, cfg, lg, factory.StoreOptions{BootstrapSchema: opts.BootstrapSchema})
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	svcHealth := startHealthCheckers(ctx, cfg, lg, st)

	handler, err := api.NewHandler(api.Deps{
		Medications:  services.NewMedicationService(st, lg),
		Entries:      services.NewEntryService(st, lg),
		IsHealthy:    svcHealth.IsHealthy,
		DefaultCount: cfg.DefaultCount,
		Version:      opts.Version,
	}, lg)
	if err != nil {
		lg.Error().Stack().Err(err).Msg("Failed to build router")
		return err
	}

	if ln == nil {
		ln, err = net.Listen("tcp", addr)
		if err != nil {
			lg.Error().Stack().Err(err).Str("addr", addr).Msg("Failed to listen")
			return fmt.Errorf("listen %s: %w", addr, err)
		}
	}

	server := newHTTPServer(ctx, handler)
	errCh := serveHTTP(server, ln, lg)

	select {
	case <-ctx.Done():
		lg.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			lg.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		lg.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		lg.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// startHealthCheckers probes the store once, so the first /health/ answer
// reflects it, and then starts the periodic checkers.
func startHealthCheckers(ctx context.Context, cfg *config.Config, lg zerolog.Logger, p health.HealthPinger) *health.ServiceHealthChecker {
	storeChecker := store.NewHealthChecker(p, lg, cfg.HealthProbeTimeout)
	storeChecker.Probe(ctx)

	svcHealth := health.NewServiceHealthChecker(lg, storeChecker)
	svcHealth.Refresh()

	go storeChecker.Start(ctx, cfg.HealthInterval)
	go svcHealth.Start(ctx, cfg.HealthInterval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
}

func serveHTTP(server *http.Server, ln net.Listener, lg zerolog.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", ln.Addr().String()).Msg("HTTP server starting")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
