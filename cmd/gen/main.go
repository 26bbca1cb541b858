package main

import (
	"NodeDashboard/internal/repository"
	"NodeDashboard/pkg/logger"
)

func main() {
	logger.Init("gen")
	defer logger.Sync()

	repository.RunGenerate()
}
