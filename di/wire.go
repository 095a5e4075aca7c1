//go:build wireinject
// +build wireinject

package di

import (
	"roomdesk/config"
	"roomdesk/infras/mongo"
	"roomdesk/infras/otel"
	"roomdesk/infras/postgres"
	"roomdesk/infras/rabbitmq"
	"roomdesk/infras/redis"
	roomClient "roomdesk/internal/client/room"
	"roomdesk/internal/handlers/health"
	roomHandler "roomdesk/internal/handlers/room"
	"roomdesk/internal/web"
	"roomdesk/shared/cache"
	"roomdesk/transport/http"
	"roomdesk/transport/http/middleware"
	"roomdesk/transport/http/router"

	roomRepository "roomdesk/internal/domains/room/repository"
	roomService "roomdesk/internal/domains/room/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	mongo.New,
	otel.New,
	redis.New,
	rabbitmq.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var domains = wire.NewSet(
	roomDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	health.New,
	roomHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		wire.Struct(new(http.Resources), "*"),
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWeb() (*web.Server, error) {
	wire.Build(
		configurations,
		otel.New,
		redis.New,
		middlewares,
		sharedHelpers,
		roomClient.New,
		web.New,
	)

	return nil, nil
}
