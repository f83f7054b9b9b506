package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/config"
	"github.com/maniacmeyers/interview-maniac-app/internal/database"
	logger "github.com/maniacmeyers/interview-maniac-app/internal/logging"
	"github.com/maniacmeyers/interview-maniac-app/internal/router"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	zapLog, err := logger.Init(".")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()

	if err := config.Init(".", zapLog); err != nil {
		zapLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	database.Init(zapLog)

	r := router.Setup(zapLog)

	addr := ":" + config.Conf.Server.Port
	zapLog.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zapLog.Fatal("Server exited", zap.Error(err))
	}
}
