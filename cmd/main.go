package main

import (
	"fmt"
	"os"

	"github.com/yungbote/linguaflow-backend/internal/app"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	a, err := app.New(log)
	if err != nil {
		log.Fatal("app init failed", "error", err)
	}
	if err := a.Run(); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
