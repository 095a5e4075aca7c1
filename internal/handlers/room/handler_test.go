package room_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roomdesk/infras/otel/mocks"
	"roomdesk/internal/domains/room/model/dto"
	roomMocks "roomdesk/internal/domains/room/mocks"
	"roomdesk/internal/domains/room/service"
	"roomdesk/internal/handlers/room"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setup(t *testing.T) (*roomMocks.MockRoomService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := roomMocks.NewMockRoomService(ctrl)

	handler := room.New(mockService, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return mockService, router
}

func do(t *testing.T, router http.Handler, method, target, body string) (int, envelope) {
	t.Helper()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	var result envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))

	return recorder.Code, result
}

func TestCreateRoom(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setupMock   func(m *roomMocks.MockRoomService)
		wantCode    int
		wantMessage string
	}{
		{
			name: "created",
			body: `{"roomNumber":"101","type":"single","price":80,"status":"available"}`,
			setupMock: func(m *roomMocks.MockRoomService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
						return dto.RoomResponse{ID: "r1", RoomNumber: *req.RoomNumber, Type: *req.Type}, nil
					})
			},
			wantCode:    http.StatusCreated,
			wantMessage: "Room created successfully",
		},
		{
			name: "duplicate room number",
			body: `{"roomNumber":"101","type":"single","price":80,"status":"available"}`,
			setupMock: func(m *roomMocks.MockRoomService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.RoomResponse{}, service.ErrRoomNumberExists)
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "Room number already exists",
		},
		{
			name: "missing fields",
			body: `{"roomNumber":"101"}`,
			setupMock: func(m *roomMocks.MockRoomService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.RoomResponse{}, service.ErrMissingFields)
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "Please provide all required fields",
		},
		{
			name:      "malformed body",
			body:      `{"roomNumber":`,
			setupMock: func(*roomMocks.MockRoomService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: `{"roomNumber":"101","type":"single","price":80,"status":"available"}`,
			setupMock: func(m *roomMocks.MockRoomService) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.RoomResponse{}, assert.AnError)
			},
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Error creating room",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := setup(t)
			tt.setupMock(mockService)

			code, result := do(t, router, http.MethodPost, "/rooms/", tt.body)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, code < 300, result.Success)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, result.Message)
			}
		})
	}
}

func TestGetRooms(t *testing.T) {
	mockService, router := setup(t)

	mockService.EXPECT().
		GetAll(gomock.Any(), dto.Filter{Search: "10", Type: "suite", Status: "all"}).
		Return(dto.GetRoomsResponse{
			Count: 2,
			Rooms: []dto.RoomResponse{{ID: "a", RoomNumber: "101"}, {ID: "b", RoomNumber: "102"}},
		}, nil)

	code, result := do(t, router, http.MethodGet, "/rooms/?search=10&type=suite&status=all", "")

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, result.Success)
	require.NotNil(t, result.Count)
	assert.Equal(t, 2, *result.Count)

	var rooms []map[string]any
	require.NoError(t, json.Unmarshal(result.Data, &rooms))
	assert.Len(t, rooms, 2)
	assert.Equal(t, "a", rooms[0]["_id"])
}

func TestGetRoomsEmpty(t *testing.T) {
	mockService, router := setup(t)

	mockService.EXPECT().
		GetAll(gomock.Any(), gomock.Any()).
		Return(dto.GetRoomsResponse{Rooms: []dto.RoomResponse{}}, nil)

	code, result := do(t, router, http.MethodGet, "/rooms/", "")

	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, result.Count)
	assert.Equal(t, 0, *result.Count)
	assert.JSONEq(t, `[]`, string(result.Data))
}

func TestGetRoomByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockService, router := setup(t)
		mockService.EXPECT().Get(gomock.Any(), "r1").Return(dto.RoomResponse{ID: "r1", RoomNumber: "101"}, nil)

		code, result := do(t, router, http.MethodGet, "/rooms/r1", "")

		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(result.Data), `"roomNumber":"101"`)
	})

	t.Run("not found", func(t *testing.T) {
		mockService, router := setup(t)
		mockService.EXPECT().Get(gomock.Any(), "missing").Return(dto.RoomResponse{}, service.ErrRoomNotFound)

		code, result := do(t, router, http.MethodGet, "/rooms/missing", "")

		assert.Equal(t, http.StatusNotFound, code)
		assert.False(t, result.Success)
		assert.Equal(t, "Room not found", result.Message)
	})
}

func TestUpdateRoom(t *testing.T) {
	mockService, router := setup(t)

	mockService.EXPECT().
		Update(gomock.Any(), gomock.Any(), "r1").
		DoAndReturn(func(_ any, req dto.UpdateRoomRequest, id string) (dto.RoomResponse, error) {
			assert.Nil(t, req.RoomNumber)
			require.NotNil(t, req.Status)

			return dto.RoomResponse{ID: id, RoomNumber: "101", Status: *req.Status}, nil
		})

	code, result := do(t, router, http.MethodPut, "/rooms/r1", `{"status":"maintenance"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Room updated successfully", result.Message)
	assert.Contains(t, string(result.Data), `"status":"maintenance"`)
}

func TestDeleteRoom(t *testing.T) {
	mockService, router := setup(t)

	gomock.InOrder(
		mockService.EXPECT().Delete(gomock.Any(), "r1").Return(nil),
		mockService.EXPECT().Delete(gomock.Any(), "r1").Return(service.ErrRoomNotFound),
	)

	code, result := do(t, router, http.MethodDelete, "/rooms/r1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Room deleted successfully", result.Message)

	code, result = do(t, router, http.MethodDelete, "/rooms/r1", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Room not found", result.Message)
}
