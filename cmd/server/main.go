package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"daytrack/internal/config"
	"daytrack/internal/db"
	"daytrack/internal/handlers"
	"daytrack/internal/logger"
	"daytrack/internal/services"
	"daytrack/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Must(logger.Options{Development: cfg.Development(), File: cfg.LogFile})
	defer log.Sync()

	deps := handlers.Deps{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	}

	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set; API will run but DB is unavailable")
	} else {
		conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to open db", zap.String("driver", cfg.DBDriver), zap.Error(err))
		}
		defer conn.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = db.RunMigrations(ctx, conn)
		cancel()
		if err != nil {
			log.Fatal("failed migrations", zap.Error(err))
		}

		enc, err := services.NewEncryptionService(cfg.EncryptionKey, cfg.BlindIndexKey)
		if err != nil {
			log.Fatal("failed to init encryption", zap.Error(err))
		}
		deps.Store = store.New(conn)
		deps.Encryption = enc
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("server stopped")
}
