package health

import (
	"net/http"
	"roomdesk/shared/constant"
	"roomdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports that the server is up.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Envelope "Server is running"
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, _ *http.Request) {
	response.WithMessage(writer, http.StatusOK, constant.ResponseMessageHealthy)
}
