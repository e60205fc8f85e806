package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"community-backend/pkg/logger"
)

func main() {
	// .env is for local development; production provides real env vars.
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using system environment", nil)
	}

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}
