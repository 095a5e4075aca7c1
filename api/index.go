package handler

import (
	"net/http"
	"roomdesk/config"
	"roomdesk/di"
	"roomdesk/shared/logger"
	"sync"
)

var (
	api     http.Handler
	apiOnce sync.Once
)

// Handler serves the room api as a single serverless function.
func Handler(w http.ResponseWriter, r *http.Request) {
	apiOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetOutput(cfg)

		logger.SetLogLevel(cfg)

		api = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()
	api.ServeHTTP(w, r)
}
