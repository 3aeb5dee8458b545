// Package main runs the in-memory task tracker backend for local development.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tasktrack/internal/mockapi"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	secret := flag.String("secret", os.Getenv("TASKTRACK_MOCKAPI_SECRET"), "token signing secret")
	resetBase := flag.String("reset-link", "", "base URL of reset links")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)
	server := mockapi.New(mockapi.Options{
		Secret:        []byte(*secret),
		ResetLinkBase: *resetBase,
		Log:           logger,
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	logger.Info("bye")
}
