// Package main is the entry point for the campus bookings server.
//
// main stays minimal: load configuration from the environment, build the
// logger, hand both to internal/server. All actual logic lives in the
// imported packages.
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sakif/campus-bookings/internal/server"
)

func main() {
	// .env is a development convenience; in production the variables come
	// from the real environment and the file simply does not exist.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// DB_PATH overrides the default for deployments, e.g.
	// DB_PATH=/var/lib/campus-bookings/prod.db
	dbPath := "data/bookings.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// JWT_SECRET must be a long random string:
	//   JWT_SECRET=$(openssl rand -hex 32)
	// Refusing to start without it beats silently issuing forgeable tokens.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	cfg := server.Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
	}
	if v := os.Getenv("AUTH_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			logger.Error("invalid AUTH_RPS value", slog.String("value", v))
			os.Exit(1)
		}
		cfg.AuthRPS = rps
	}
	if v := os.Getenv("AUTH_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			logger.Error("invalid AUTH_BURST value", slog.String("value", v))
			os.Exit(1)
		}
		cfg.AuthBurst = burst
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// logLevel maps LOG_LEVEL to a slog level, defaulting to info. Unknown values
// also fall back to info rather than aborting startup over a log knob.
func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
