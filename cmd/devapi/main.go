package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	logrus "github.com/sirupsen/logrus"

	"traveling_help/internal/config"
	"traveling_help/internal/devapi"
	"traveling_help/internal/logger"
	"traveling_help/internal/middleware"
	"traveling_help/internal/routes"
)

func main() {
	cfg, err := config.LoadDevAPI()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	accessLog := logger.Setup(cfg.LogFile, cfg.LogLevel)

	var store devapi.Store
	switch cfg.Store {
	case "memory":
		store = devapi.NewMemoryStore()
	default:
		// Connect to the database
		db, err := config.InitDB(cfg)
		if err != nil {
			logrus.Fatalf("database: %v", err)
		}
		store = devapi.NewGormStore(db)
	}

	h := devapi.NewHandler(store, []byte(cfg.JWTSecret), cfg.JWTTTL)
	r := routes.SetupAPIRouter(h, accessLog)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           middleware.EnableCORS(cfg.CORSOrigins)(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{"addr": cfg.Addr, "store": cfg.Store}).Info("dev api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown")
	}
	logrus.Info("dev api stopped")
}
