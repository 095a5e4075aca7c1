package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomdesk/config"
	"roomdesk/infras/otel/mocks"
	rabbitMocks "roomdesk/infras/rabbitmq/mocks"
	roomMocks "roomdesk/internal/domains/room/mocks"
	"roomdesk/internal/domains/room/model"
	"roomdesk/internal/domains/room/model/dto"
	"roomdesk/internal/domains/room/repository"
	"roomdesk/internal/domains/room/service"
	"roomdesk/shared/cache"
	cacheMocks "roomdesk/shared/cache/mocks"
	"roomdesk/shared/constant"
	"roomdesk/shared/failure"
	gModel "roomdesk/shared/model"
)

const roomID = "8a4b2d3c-1f5e-4e6a-9b7c-0d1e2f3a4b5c"

type fixture struct {
	repo      *roomMocks.MockRoom
	cache     *cacheMocks.MockRedisCache
	publisher *rabbitMocks.MockPublisher
	svc       service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	f := fixture{
		repo:      roomMocks.NewMockRoom(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		publisher: rabbitMocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.publisher)

	return f
}

func ptr[T any](v T) *T {
	return &v
}

func sampleRoom() model.Room {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	return model.Room{
		ID:          roomID,
		RoomNumber:  "101",
		Type:        model.TypeSingle,
		Price:       99.5,
		Status:      model.StatusAvailable,
		Description: "garden view",
		Metadata:    gModel.Metadata{CreatedAt: now, UpdatedAt: now},
	}
}

func validCreateRequest() dto.CreateRoomRequest {
	return dto.CreateRoomRequest{
		RoomNumber: ptr(" 101 "),
		Type:       ptr(model.TypeSingle),
		Price:      ptr(99.5),
		Status:     ptr(model.StatusAvailable),
	}
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       func() dto.CreateRoomRequest
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "successful creation trims room number",
			req:  validCreateRequest,
			setupMock: func(f fixture) {
				f.repo.EXPECT().ExistByRoomNumber(gomock.Any(), "101").Return(false, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) (model.Room, error) {
						assert.Equal(t, "101", room.RoomNumber)
						room.ID = roomID

						return room, nil
					})
				f.cache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), service.EventRoomCreated, gomock.Any()).Return(nil)
			},
		},
		{
			name: "missing fields",
			req: func() dto.CreateRoomRequest {
				req := validCreateRequest()
				req.Status = nil

				return req
			},
			setupMock: func(fixture) {},
			wantErr:   service.ErrMissingFields,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "blank room number counts as missing",
			req: func() dto.CreateRoomRequest {
				req := validCreateRequest()
				req.RoomNumber = ptr("   ")

				return req
			},
			setupMock: func(fixture) {},
			wantErr:   service.ErrMissingFields,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "invalid type",
			req: func() dto.CreateRoomRequest {
				req := validCreateRequest()
				req.Type = ptr("penthouse")

				return req
			},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "negative price",
			req: func() dto.CreateRoomRequest {
				req := validCreateRequest()
				req.Price = ptr(-1.0)

				return req
			},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate room number",
			req:  validCreateRequest,
			setupMock: func(f fixture) {
				f.repo.EXPECT().ExistByRoomNumber(gomock.Any(), "101").Return(true, nil)
			},
			wantErr:  service.ErrRoomNumberExists,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unique index rejects concurrent duplicate",
			req:  validCreateRequest,
			setupMock: func(f fixture) {
				f.repo.EXPECT().ExistByRoomNumber(gomock.Any(), "101").Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(model.Room{}, repository.ErrDuplicateRoomNumber)
			},
			wantErr:  service.ErrRoomNumberExists,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  validCreateRequest,
			setupMock: func(f fixture) {
				f.repo.EXPECT().ExistByRoomNumber(gomock.Any(), "101").Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(model.Room{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req())

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, roomID, res.ID)
				assert.Equal(t, "101", res.RoomNumber)
				assert.Equal(t, model.StatusAvailable, res.Status)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRoomService_CreatePublishFailureIsNotReturned(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().ExistByRoomNumber(gomock.Any(), "101").Return(false, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(sampleRoom(), nil)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	res, err := f.svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, roomID, res.ID)
}

func TestRoomService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		setupMock func(f fixture)
		wantErr   bool
		wantCount int
	}{
		{
			name:   "cache miss reads repository and saves",
			filter: dto.Filter{Search: " 10 ", Type: "all", Status: model.StatusAvailable},
			setupMock: func(f fixture) {
				key := "room:gets:10:all:available"

				f.cache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), model.Filter{Search: "10", Type: "all", Status: model.StatusAvailable}).
					Return([]model.Room{sampleRoom(), sampleRoom()}, nil)
				f.cache.EXPECT().Save(gomock.Any(), key, gomock.Any(), 300).Return(nil)
			},
			wantCount: 2,
		},
		{
			name:   "colons in filter values are escaped in the cache key",
			filter: dto.Filter{Search: "10:30", Type: model.TypeSuite},
			setupMock: func(f fixture) {
				key := "room:gets:10%3A30:suite:"

				f.cache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().
					GetAll(gomock.Any(), model.Filter{Search: "10:30", Type: model.TypeSuite}).
					Return([]model.Room{sampleRoom()}, nil)
				f.cache.EXPECT().Save(gomock.Any(), key, gomock.Any(), 300).Return(nil)
			},
			wantCount: 1,
		},
		{
			name:   "cache hit skips repository",
			filter: dto.Filter{},
			setupMock: func(f fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), "room:gets:::", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.GetRoomsResponse)
						res.Count = 1
						res.Rooms = []dto.RoomResponse{{ID: roomID}}

						return nil
					})
			},
			wantCount: 1,
		},
		{
			name:   "repository error",
			filter: dto.Filter{},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(nil, errors.New("get all error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetAll(context.Background(), tt.filter)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, res.Count)
			assert.Len(t, res.Rooms, tt.wantCount)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "successful get",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "room:get:"+roomID, gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(sampleRoom(), nil)
				f.cache.EXPECT().Save(gomock.Any(), "room:get:"+roomID, gomock.Any(), 300).Return(nil)
			},
		},
		{
			name: "cache save failure is ignored",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(sampleRoom(), nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(model.Room{}, nil)
			},
			wantErr:  service.ErrRoomNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(model.Room{}, errors.New("get error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), roomID)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, roomID, res.ID)
				assert.Equal(t, "garden view", res.Description)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	updated := sampleRoom()
	updated.Status = model.StatusOccupied

	expectInvalidate := func(f fixture) {
		f.cache.EXPECT().Delete(gomock.Any(), "room:get:"+roomID).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil)
	}

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "status only update keeps other fields",
			req:  dto.UpdateRoomRequest{Status: ptr(model.StatusOccupied)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(sampleRoom(), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), roomID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, fields map[string]any) (bool, error) {
						assert.Equal(t, model.StatusOccupied, fields[model.FieldStatus])
						assert.Contains(t, fields, constant.FieldUpdatedAt)
						assert.NotContains(t, fields, model.FieldRoomNumber)
						assert.Len(t, fields, 2)

						return true, nil
					})
				expectInvalidate(f)
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(updated, nil)
				f.publisher.EXPECT().Publish(gomock.Any(), service.EventRoomUpdated, gomock.Any()).Return(nil)
			},
		},
		{
			name: "unchanged room number skips uniqueness check",
			req:  dto.UpdateRoomRequest{RoomNumber: ptr(" 101 "), Status: ptr(model.StatusOccupied)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(sampleRoom(), nil)
				f.repo.EXPECT().Update(gomock.Any(), roomID, gomock.Any()).Return(true, nil)
				expectInvalidate(f)
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(updated, nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "changed room number already taken",
			req:  dto.UpdateRoomRequest{RoomNumber: ptr("102")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(sampleRoom(), nil)
				f.repo.EXPECT().ExistByRoomNumber(gomock.Any(), "102").Return(true, nil)
			},
			wantErr:  service.ErrRoomNumberExists,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unique index rejects concurrent rename",
			req:  dto.UpdateRoomRequest{RoomNumber: ptr("102")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(sampleRoom(), nil)
				f.repo.EXPECT().ExistByRoomNumber(gomock.Any(), "102").Return(false, nil)
				f.repo.EXPECT().Update(gomock.Any(), roomID, gomock.Any()).Return(false, repository.ErrDuplicateRoomNumber)
			},
			wantErr:  service.ErrRoomNumberExists,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room not found",
			req:  dto.UpdateRoomRequest{Status: ptr(model.StatusOccupied)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(model.Room{}, nil)
			},
			wantErr:  service.ErrRoomNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name: "invalid status",
			req:  dto.UpdateRoomRequest{Status: ptr("closed")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(sampleRoom(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room removed while updating",
			req:  dto.UpdateRoomRequest{Status: ptr(model.StatusOccupied)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(sampleRoom(), nil)
				f.repo.EXPECT().Update(gomock.Any(), roomID, gomock.Any()).Return(false, nil)
			},
			wantErr:  service.ErrRoomNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			req:  dto.UpdateRoomRequest{Status: ptr(model.StatusOccupied)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), roomID).Return(sampleRoom(), nil)
				f.repo.EXPECT().Update(gomock.Any(), roomID, gomock.Any()).Return(false, errors.New("update error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Update(context.Background(), tt.req, roomID)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, model.StatusOccupied, res.Status)
				assert.Equal(t, "101", res.RoomNumber)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "successful delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), roomID).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), roomID).Return(true, nil)
				f.cache.EXPECT().Delete(gomock.Any(), "room:get:"+roomID).Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), service.EventRoomDeleted, service.Event{ID: roomID}).Return(nil)
			},
		},
		{
			name: "room not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), roomID).Return(false, nil)
			},
			wantErr:  service.ErrRoomNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name: "exist check error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), roomID).Return(false, errors.New("exist error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "delete error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), roomID).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), roomID).Return(false, errors.New("delete error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), roomID)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
