package main

import (
	"os"
	"roomdesk/config"
	"roomdesk/helper"
	"roomdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()
	logger.SetOutput(cfg)
	logger.SetLogLevel(cfg)

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}
}
