package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/mayorista/config"
	"github.com/shashiranjanraj/mayorista/pkg/grpc"
	"github.com/shashiranjanraj/mayorista/pkg/logger"
	"github.com/shashiranjanraj/mayorista/pkg/middleware"
)

const (
	rateLimit       = 200
	rateWindow      = time.Minute
	shutdownTimeout = 15 * time.Second
)

// Start boots the app and serves HTTP and gRPC until SIGINT or SIGTERM.
func Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.Load(); err != nil {
		return err
	}

	closeSink, err := logger.EnableMongoSink(ctx)
	if err != nil {
		logger.Warn("mongo log sink disabled", "error", err)
	} else {
		defer closeSink()
	}

	a, err := Boot(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	limiter := middleware.NewLimiter(rateLimit, rateWindow)
	go limiter.Run(ctx)

	r, err := Router(a, limiter)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	grpcSrv, err := grpc.Start(config.GRPCPort(), a.Ping)
	if err != nil {
		return err
	}
	defer grpc.Stop(grpcSrv)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mayorista listening", "addr", srv.Addr, "env", config.AppEnv(), "store", config.StoreDriver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
		return err
	}
	return nil
}
