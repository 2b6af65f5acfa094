package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jigyasu/commerce-system/internal/api"
	"github.com/jigyasu/commerce-system/internal/infrastructure/config"
	"github.com/jigyasu/commerce-system/internal/infrastructure/db/postgres"
	"github.com/jigyasu/commerce-system/internal/infrastructure/db/redis"
	"github.com/jigyasu/commerce-system/internal/infrastructure/mail"
	"github.com/jigyasu/commerce-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Jigyasu Commerce API
// @version      1.0
// @description  User accounts, role upgrade workflow, and cart quote pipeline.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		// Init is a no-op when run() already set the logger up.
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("application error")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
		Output: os.Stdout,
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting commerce api")

	pool, err := postgres.Connect(ctx, postgres.Config{
		DSN:      cfg.Postgres.DSN(),
		MaxConns: int32(cfg.Postgres.MaxConns),
	})
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info().Str("database", cfg.Postgres.Database).Msg("postgres connected")

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	mailer := mail.NewSendGridMailer(cfg.Mail.APIKey, cfg.Mail.From)
	dispatcher := mail.NewDispatcher(cfg.Mail.Workers, mailer, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, pool, rdb, dispatcher, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("application stopped")
	return nil
}
