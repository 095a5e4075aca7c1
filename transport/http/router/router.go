package router

import (
	"net/http"
	_ "roomdesk/docs"
	"roomdesk/internal/handlers/health"
	"roomdesk/internal/handlers/room"
	"roomdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health health.Handler
	Room   room.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/api", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)

		routerGroup.Get("/swagger/*", httpSwagger.WrapHandler)
	})

	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		response.WithRouteNotFound(writer)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		response.WithRouteNotFound(writer)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
