package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"roomdesk/infras/otel"
	"roomdesk/internal/domains/room/model"
	"roomdesk/shared"
	"roomdesk/shared/constant"
	"roomdesk/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const indexTimeout = 10 * time.Second

// bsonFields maps column names used by the service onto document keys.
var bsonFields = map[string]string{
	model.FieldRoomNumber:   "roomNumber",
	model.FieldType:         "type",
	model.FieldPrice:        "price",
	model.FieldStatus:       "status",
	model.FieldDescription:  "description",
	constant.FieldCreatedAt: "createdAt",
	constant.FieldUpdatedAt: "updatedAt",
}

type roomDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	model.Room `bson:",inline"`
}

func (d roomDocument) toModel() model.Room {
	room := d.Room
	room.ID = d.ID.Hex()

	return room
}

type mongoImpl struct {
	collection *mongo.Collection
	otel       otel.Otel
}

// NewMongo returns a collection-backed repository and ensures its indexes exist.
func NewMongo(collection *mongo.Collection, otel otel.Otel) Room {
	repo := &mongoImpl{
		collection: collection,
		otel:       otel,
	}

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	if err := repo.ensureIndexes(ctx); err != nil {
		log.Error().Err(err).Str("collection", collection.Name()).Msg("failed to create room indexes")
	}

	return repo
}

func (r *mongoImpl) ensureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "roomNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func (r *mongoImpl) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, operation))
}

func (r *mongoImpl) Insert(ctx context.Context, room model.Room) (model.Room, error) {
	ctx, scope := r.scope(ctx, "Insert")
	defer scope.End()

	doc := roomDocument{ID: primitive.NewObjectID(), Room: room}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		scope.TraceError(err)

		if mongo.IsDuplicateKeyError(err) {
			return model.Room{}, fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, room.RoomNumber)
		}

		logger.ErrorWithStack(err)

		return model.Room{}, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return doc.toModel(), nil
}

func (r *mongoImpl) Get(ctx context.Context, id string) (model.Room, error) {
	ctx, scope := r.scope(ctx, "Get")
	defer scope.End()

	objectID, ok := toObjectID(id)
	if !ok {
		return model.Room{}, nil
	}

	var doc roomDocument

	err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Room{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Room{}, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return doc.toModel(), nil
}

func (r *mongoImpl) GetAll(ctx context.Context, filter model.Filter) ([]model.Room, error) {
	ctx, scope := r.scope(ctx, "GetAll")
	defer scope.End()

	query := listQuery(filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}
	defer cursor.Close(ctx)

	var docs []roomDocument
	if err = cursor.All(ctx, &docs); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to decode data (%s): %w", model.EntityName, err)
	}

	rooms := make([]model.Room, len(docs))
	for i, doc := range docs {
		rooms[i] = doc.toModel()
	}

	return rooms, nil
}

func (r *mongoImpl) Exist(ctx context.Context, id string) (bool, error) {
	objectID, ok := toObjectID(id)
	if !ok {
		return false, nil
	}

	return r.exist(ctx, bson.M{"_id": objectID})
}

func (r *mongoImpl) ExistByRoomNumber(ctx context.Context, roomNumber string) (bool, error) {
	return r.exist(ctx, bson.M{"roomNumber": roomNumber})
}

func (r *mongoImpl) exist(ctx context.Context, query bson.M) (bool, error) {
	ctx, scope := r.scope(ctx, "Exist")
	defer scope.End()

	count, err := r.collection.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", model.EntityName, err)
	}

	return count > 0, nil
}

func (r *mongoImpl) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	ctx, scope := r.scope(ctx, "Update")
	defer scope.End()

	objectID, ok := toObjectID(id)
	if !ok {
		return false, nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": toDocumentFields(fields)})
	if err != nil {
		scope.TraceError(err)

		if mongo.IsDuplicateKeyError(err) {
			return false, fmt.Errorf("%w: %v", ErrDuplicateRoomNumber, fields[model.FieldRoomNumber])
		}

		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return result.MatchedCount > 0, nil
}

func (r *mongoImpl) Delete(ctx context.Context, id string) (bool, error) {
	ctx, scope := r.scope(ctx, "Delete")
	defer scope.End()

	objectID, ok := toObjectID(id)
	if !ok {
		return false, nil
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	return result.DeletedCount > 0, nil
}

// listQuery matches search as a literal, case-insensitive substring.
func listQuery(filter model.Filter) bson.M {
	query := bson.M{}

	if filter.Search != constant.Empty {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"roomNumber": pattern},
			bson.M{"description": pattern},
		}
	}

	if f := shared.FilterUnlessAll(model.FieldType, filter.Type, constant.Empty); f != nil {
		query["type"] = f.Value
	}

	if f := shared.FilterUnlessAll(model.FieldStatus, filter.Status, constant.Empty); f != nil {
		query["status"] = f.Value
	}

	return query
}

func toDocumentFields(fields map[string]any) bson.M {
	doc := bson.M{}

	for column, value := range fields {
		key, ok := bsonFields[column]
		if !ok {
			key = column
		}

		doc[key] = value
	}

	return doc
}

func toObjectID(id string) (primitive.ObjectID, bool) {
	objectID, err := primitive.ObjectIDFromHex(id)

	return objectID, err == nil
}
