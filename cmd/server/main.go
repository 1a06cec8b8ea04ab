package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"traveling_help/internal/api"
	"traveling_help/internal/config"
	"traveling_help/internal/controllers"
	"traveling_help/internal/logger"
	"traveling_help/internal/routes"
	"traveling_help/internal/session"
	"traveling_help/internal/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	// Initialize structured logging to file
	accessLog := logger.Setup(cfg.LogFile, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	tmpl, err := views.Templates(cfg.Location)
	if err != nil {
		logrus.Fatalf("templates: %v", err)
	}

	ctl := &controllers.Controller{
		API:      api.NewClient(cfg.APIBaseURL, cfg.APITimeout),
		Sessions: session.CookieFactory(cfg.CookieSecure),
		Location: cfg.Location,
		PageSize: cfg.PageSize,

		CookieSecure: cfg.CookieSecure,
	}
	r := routes.SetupRouter(ctl, tmpl, accessLog)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{"addr": cfg.Addr, "api": cfg.APIBaseURL}).Info("web server listening")
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
	logrus.Info("web server stopped")
}
