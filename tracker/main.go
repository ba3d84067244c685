package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"task-tracker/tracker/adapters/db"
	trackergrpc "task-tracker/tracker/adapters/grpc"
	"task-tracker/tracker/adapters/health"
	"task-tracker/tracker/adapters/password"
	"task-tracker/tracker/adapters/rest"
	"task-tracker/tracker/adapters/rest/handlers"
	"task-tracker/tracker/adapters/token"
	"task-tracker/tracker/config"
	"task-tracker/tracker/core"
)

func main() {
	var (
		configPath  string
		healthcheck bool
	)
	pflag.StringVar(&configPath, "config", "config.yaml", "task tracker configuration file")
	pflag.BoolVar(&healthcheck, "healthcheck", false, "probe the running server over gRPC and exit")
	pflag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	if healthcheck {
		if err := probe(cfg, log); err != nil {
			log.Error("healthcheck failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	log.Info("starting task tracker", "db_driver", cfg.DB.Driver)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// database adapter
	storage, err := db.New(log, db.Dialect(cfg.DB.Driver), cfg.DB.Address)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("failed to close db connection", "error", err)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}

	hasher, err := password.NewBcrypt(bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to init password hasher: %w", err)
	}
	tokens, err := token.New([]byte(cfg.Auth.TokenSecret), time.Now)
	if err != nil {
		return fmt.Errorf("failed to init token service: %w", err)
	}

	// services
	pingers := map[string]core.Pinger{"db": storage}
	deps := core.Deps{
		Accounts: core.NewAccounts(storage, hasher),
		Tasks:    core.NewTasks(storage),
		Sessions: core.NewSessions(tokens),
		Tokens:   tokens,
		Pingers:  pingers,
	}

	mux := http.NewServeMux()
	handlers.Register(mux, log, deps, handlers.Options{
		Timeout:      cfg.HTTP.Timeout,
		TokenTTL:     cfg.Auth.TokenTTL,
		CookieSecure: cfg.Auth.CookieSecure,
	})

	server := http.Server{
		Addr:              cfg.HTTP.Address,
		ReadHeaderTimeout: cfg.HTTP.Timeout,
		Handler:           rest.WithRequestLog(log, mux),
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("http server is running", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	// optional grpc health endpoint
	var grpcServer *grpc.Server
	if cfg.GRPCAddress != "" {
		listener, err := net.Listen("tcp", cfg.GRPCAddress)
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}

		grpcServer = grpc.NewServer()
		healthpb.RegisterHealthServer(grpcServer, trackergrpc.NewServer(log, pingers))
		reflection.Register(grpcServer)

		go func() {
			log.Info("grpc health server is running", "address", cfg.GRPCAddress)
			errCh <- grpcServer.Serve(listener)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server stopped unexpectedly: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	return runErr
}

func probe(cfg config.Config, log *slog.Logger) error {
	if cfg.GRPCAddress == "" {
		return errors.New("grpc_address is not configured")
	}

	address := cfg.GRPCAddress
	if strings.HasPrefix(address, ":") {
		address = "localhost" + address
	}

	client, err := health.NewClient(address, "", log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout)
	defer cancel()
	return client.Ping(ctx)
}

func mustMakeLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
