package http

import (
	"context"
	"roomdesk/infras/postgres"
	"roomdesk/infras/rabbitmq"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// Resources are the connections released once the server has stopped serving.
// Any of them may be nil when the matching backend is disabled.
type Resources struct {
	Postgres  *postgres.Connection
	Mongo     *mongo.Database
	Redis     *goRedis.Client
	Publisher rabbitmq.Publisher
}

// Close releases every resource and reports how many failed to close.
func (r Resources) Close(ctx context.Context) int {
	failed := 0

	release := func(name string, closeFn func() error) {
		if err := closeFn(); err != nil {
			failed++

			log.Error().Err(err).Str("resource", name).Msg("Failed to release resource")

			return
		}

		log.Info().Str("resource", name).Msg("Released resource")
	}

	if r.Publisher != nil {
		release("rabbitmq", r.Publisher.Close)
	}

	if r.Postgres != nil {
		release("postgres", r.Postgres.Close)
	}

	if r.Mongo != nil {
		release("mongo", func() error { return r.Mongo.Client().Disconnect(ctx) })
	}

	if r.Redis != nil {
		release("redis", r.Redis.Close)
	}

	return failed
}
