package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"errors"
	"fmt"

	"roomdesk/config"
	"roomdesk/infras/otel"
	"roomdesk/infras/rabbitmq"
	"roomdesk/internal/domains/room/model/dto"
	"roomdesk/internal/domains/room/repository"
	"roomdesk/shared"
	"roomdesk/shared/cache"
	"roomdesk/shared/constant"
	"roomdesk/shared/failure"
	"roomdesk/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
)

const (
	EventRoomCreated = "room.created"
	EventRoomUpdated = "room.updated"
	EventRoomDeleted = "room.deleted"
)

var (
	ErrRoomNotFound     = failure.NotFound("Room not found")
	ErrRoomNumberExists = failure.Conflict("Room number already exists")
	ErrMissingFields    = failure.BadRequestFromString("Please provide all required fields")
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, filter dto.Filter) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
}

// Event is the payload published after a room changes.
type Event struct {
	ID   string            `json:"id"`
	Room *dto.RoomResponse `json:"room,omitempty"`
}

type serviceImpl struct {
	repo      repository.Room
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher rabbitmq.Publisher
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, publisher rabbitmq.Publisher) Room {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if !req.HasRequiredFields() {
		return res, ErrMissingFields
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	exist, err := s.repo.ExistByRoomNumber(ctx, *req.RoomNumber)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return res, fmt.Errorf("failed to check room number: %w", err)
	}

	// check-then-insert can race; the unique index rejects the loser
	if exist {
		return res, ErrRoomNumberExists
	}

	room, err := s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRoomNumber) {
			return res, ErrRoomNumberExists
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoom)
	s.publish(ctx, EventRoomCreated, Event{ID: res.ID, Room: &res})

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.Filter) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := filter.ToModel()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, query.Search, query.Type, query.Status)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, ErrRoomNotFound
	}

	res.FromModel(room)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	currentRoom, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to check room existence: %w", err)
	}

	if currentRoom.ID == constant.Empty {
		return res, ErrRoomNotFound
	}

	req.Normalize()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.RoomNumber != nil && *req.RoomNumber != currentRoom.RoomNumber {
		exist, err := s.repo.ExistByRoomNumber(ctx, *req.RoomNumber)
		if err != nil {
			log.Error().Err(err).Msg("failed to check room number")

			return res, fmt.Errorf("failed to check room number: %w", err)
		}

		if exist {
			return res, ErrRoomNumberExists
		}
	}

	found, err := s.repo.Update(ctx, id, shared.TransformFields(req))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRoomNumber) {
			return res, ErrRoomNumberExists
		}

		log.Error().Err(err).Msg("failed to update room")

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	if !found {
		return res, ErrRoomNotFound
	}

	s.invalidate(ctx, id)

	updatedRoom, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload room")

		return res, fmt.Errorf("failed to reload room: %w", err)
	}

	if updatedRoom.ID == constant.Empty {
		return res, ErrRoomNotFound
	}

	res.FromModel(updatedRoom)
	s.publish(ctx, EventRoomUpdated, Event{ID: res.ID, Room: &res})

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.repo.Exist(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return ErrRoomNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	if !deleted {
		return ErrRoomNotFound
	}

	s.invalidate(ctx, id)
	s.publish(ctx, EventRoomDeleted, Event{ID: id})

	return nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	if err := s.cache.Save(ctx, key, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("failed to save rooms to cache")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete room cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoom)
}

func (s *serviceImpl) publish(ctx context.Context, routingKey string, event Event) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+routingKey)
	defer scope.End()

	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", routingKey).Str("id", event.ID).Msg("failed to publish room event")
	}
}
