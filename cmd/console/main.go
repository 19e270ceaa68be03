package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/me/voirie/internal/api"
	"github.com/me/voirie/internal/auth"
	"github.com/me/voirie/internal/config"
	"github.com/me/voirie/internal/console"
	"github.com/me/voirie/internal/firebase"
	"github.com/me/voirie/internal/logging"
	"github.com/me/voirie/internal/session"
	"github.com/me/voirie/internal/store"
)

func main() {
	cfg := config.Load()
	consoleCfg := config.LoadConsole()

	flag.StringVar(&consoleCfg.Addr, "addr", consoleCfg.Addr, "Listen address")
	flag.StringVar(&consoleCfg.LogLevel, "log-level", consoleCfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&consoleCfg.LogFormat, "log-format", consoleCfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&consoleCfg.DBPath, "db", consoleCfg.DBPath, "Session database path")
	flag.BoolVar(&consoleCfg.Secure, "secure", consoleCfg.Secure, "Secure cookies (HTTPS deployments)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	if *debug {
		consoleCfg.LogLevel = "debug"
	}

	logger := logging.NewLogger(logging.ParseLevel(consoleCfg.LogLevel), consoleCfg.LogFormat)

	// Open the session store and run migrations.
	st, err := store.NewSQLiteStore(consoleCfg.DBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("session database ready", "path", consoleCfg.DBPath)

	var fb *firebase.Client
	if cfg.FirebaseAPIKey != "" {
		fb = firebase.NewClient(cfg.FirebaseAPIKey, cfg.FirebaseProjectID, logger)
	}

	// Backend client: each request is authorized as the logged-in
	// manager via the cookie session attached to the request context.
	// In provider deployments the backend issues no JWT, so the token
	// source mints provider ID tokens from the session's refresh token.
	tokens := console.NewSessionTokenSource(fb)
	backend := api.NewClient(cfg.APIRoot(), cfg.AdminKey, tokens, logger)

	// Credential resolver for the login form. The login flow itself
	// keeps no client-side session; the cookie session is the console's
	// own state, so the resolver gets a throwaway memory store.
	state := auth.NewState(cfg.AuthMode)
	authn := auth.New(cfg.AuthMode, backend, fb, session.NewMemStore(), state, logger)

	c := console.New(st, authn, backend, tokens, logger, console.Config{Secure: consoleCfg.Secure})

	httpServer := &http.Server{
		Addr:    consoleCfg.Addr,
		Handler: c.Router(logger),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Periodic cleanup of expired cookie sessions.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := console.NewSessionManager(st).CleanupExpiredSessions(ctx); err != nil {
					logger.Error("session cleanup failed", "error", err)
				} else if n > 0 {
					logger.Info("expired sessions removed", "count", n)
				}
			}
		}
	}()

	go func() {
		logger.Info("console starting", "addr", consoleCfg.Addr, "backend", cfg.APIRoot(), "mode", cfg.AuthMode)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("console failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("console stopped")
}
