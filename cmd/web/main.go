package main

import (
	"roomdesk/config"
	"roomdesk/di"
	"roomdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetOutput(cfg)
	logger.SetLogLevel(cfg)

	server, err := di.InitializeWeb()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize web UI")
	}

	server.Serve()
}
