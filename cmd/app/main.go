package main

import (
	"roomdesk/config"
	"roomdesk/di"
	"roomdesk/shared/logger"
)

// @title Roomdesk API
// @version 1.0
// @description Room inventory administration.
// @BasePath /api
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetOutput(cfg)
	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
