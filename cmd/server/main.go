package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Belphemur/AkwamProvider/internal/client"
	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/errorreport"
	grpcserver "github.com/Belphemur/AkwamProvider/internal/grpc"
	"github.com/Belphemur/AkwamProvider/internal/metrics"
)

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("main_url", cfg.MainURL).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Str("cache_provider", cfg.Cache.Provider).
		Bool("browser_enabled", cfg.Browser.Enabled).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	if err := errorreport.Init(cfg.Sentry.DSN, cfg.Sentry.Environment); err != nil {
		logger.Warn().Err(err).Msg("Error reporting disabled")
	}
	defer errorreport.Flush(2 * time.Second)

	akwam := client.NewClient(cfg)
	defer func() {
		if err := akwam.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close provider")
		}
	}()

	grpcServer := grpcserver.NewGRPCServer(akwam)

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logger.Fatal().Err(err).Str("address", address).Msg("Failed to create listener")
	}

	logger.Info().Str("address", address).Msg("Starting gRPC server")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		grpcServer.Drain()
	}()

	if err := grpcServer.Serve(listener); err != nil {
		logger.Error().Err(err).Msg("Failed to serve gRPC")
		return
	}

	logger.Info().Msg("Server stopped gracefully")
}
