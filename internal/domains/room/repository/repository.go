package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"roomdesk/config"
	"roomdesk/infras/otel"
	"roomdesk/infras/postgres"
	"roomdesk/internal/domains/room/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateRoomNumber is returned when the store rejects a write on its unique room number index.
var ErrDuplicateRoomNumber = errors.New("duplicate room number")

type Room interface {
	// Insert stores the room and returns it with its generated id.
	Insert(ctx context.Context, room model.Room) (model.Room, error)
	// Get returns the zero Room when id does not exist.
	Get(ctx context.Context, id string) (model.Room, error)
	GetAll(ctx context.Context, filter model.Filter) ([]model.Room, error)
	Exist(ctx context.Context, id string) (bool, error)
	ExistByRoomNumber(ctx context.Context, roomNumber string) (bool, error)
	// Update applies fields keyed by column name and reports whether the room existed.
	Update(ctx context.Context, id string, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// New picks the implementation matching the configured database driver.
func New(cfg *config.Config, db *postgres.Connection, mdb *mongo.Database, otel otel.Otel) Room {
	if cfg.DB.Driver == config.DBDriverMongo {
		return NewMongo(mdb.Collection(cfg.DB.Mongo.Collection), otel)
	}

	return NewPostgres(db, otel)
}
