package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"tellsapi/auth"
	"tellsapi/config"
	"tellsapi/database"
	"tellsapi/handlers"
	"tellsapi/logger"
	"tellsapi/repositories"
	"tellsapi/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFile)
	if cfg.JWTSecretDefaulted {
		log.Warn("JWT_SECRET is not set, signing tokens with the built-in default secret")
	}

	db, err := database.Open(cfg.DB, log)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	stores := repositories.NewStores(db.DB)
	uow := repositories.NewUnitOfWork(db.DB, cfg.AtomicGraph)
	tokens := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)

	router := routes.SetupRoutes(
		handlers.NewUserHandler(stores.Users, auth.NewBcryptHasher(auth.DefaultCost), tokens),
		handlers.NewTellHandler(stores.Tells),
		handlers.NewFollowHandler(stores.Users, stores.Follows, uow),
		handlers.NewSystemHandler(),
		auth.Middleware(tokens),
		log,
		cfg.CORSOrigins,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Infof("Server is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Info("Gracefully shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
}
