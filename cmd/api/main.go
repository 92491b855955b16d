package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/atlas-card/atlas-api/internal/config"
	"github.com/atlas-card/atlas-api/internal/logger"
	"github.com/atlas-card/atlas-api/internal/server"
)

// @title           Atlas Card API
// @version         1.0
// @description     API server for Atlas Card delegation authorizations

// @host      localhost:8000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v\n", err)
	}

	logger.InitLogger(cfg.GinMode)
	defer logger.Sync()

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize server", zap.Error(err))
	}
	defer srv.Close()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8000"
	}

	if err := srv.Run(fmt.Sprintf(":%s", port)); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
