package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/zehrazehrazehra/recipe-backend/internal/config"
	"github.com/zehrazehrazehra/recipe-backend/internal/server"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	srv, err := server.New(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize server: %v", err)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("Server error: %v", err)
	}
}
