package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/feasibility/internal/server"
	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/iwvelando/feasibility/pkg/logging"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	envFile := flag.String("env-file", ".env", "optional dotenv file loaded before reading the environment")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := loadServerConfig(*configLocation, *envFile)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config(cfg.Logging), *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	srv := newHTTPServer(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info(fmt.Sprintf("listening on %s", cfg.Address),
			zap.String("op", "main"),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
			zap.Int("maxProjectMonths", cfg.MaxProjectMonths),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// loadServerConfig loads the dotenv file into the process environment and
// then builds the server config, so real environment variables win over the
// dotenv file, which wins over the YAML file. A missing dotenv file is fine.
func loadServerConfig(configPath, envFile string) (*server.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}
	return server.LoadConfig(configPath, os.LookupEnv)
}

func newHTTPServer(cfg *server.Config, logger *zap.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logging.Named(logger, "http"), cfg.Limits(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
