package mongo

import (
	"context"
	"roomdesk/config"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// New connects to mongo and returns the configured database. It returns nil unless mongo is the selected driver.
func New(cfg *config.Config) *mongo.Database {
	if cfg.DB.Driver != config.DBDriverMongo {
		return nil
	}

	timeout := time.Duration(cfg.DB.Mongo.TimeoutSeconds) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.DB.Mongo.URI).
		SetConnectTimeout(timeout))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping MongoDB")
	}

	log.Info().
		Str("database", cfg.DB.Mongo.Database).
		Msg("Connected to MongoDB")

	return client.Database(cfg.DB.Mongo.Database)
}
