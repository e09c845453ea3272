package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	logger.Info("Storage initialized", "backend", cfg.StorageBackend, "key", cfg.StateKey)

	m := metrics.New()
	store := ledger.New(
		ledger.NewPersister(backend, cfg.StateKey, logger),
		ledger.WithLogger(logger),
		ledger.WithMetrics(m),
	)
	store.Load(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(store, m, logger),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// newHandler mounts the Connect service, metrics and health endpoints and
// wraps them with logging, CORS and h2c.
func newHandler(store *ledger.Store, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(logger, m))
	path, handler := service.NewLedgerServiceHandler(service.NewLedgerService(store, logger), interceptors)
	mux.Handle(path, handler)

	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(store.Phase().String()))
	})

	loggedHandler := middleware.Logging(logger, middleware.CORS(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	return h2c.NewHandler(loggedHandler, &http2.Server{})
}
