package room

import (
	"net/http"
	"roomdesk/infras/otel"
	"roomdesk/internal/domains/room/model/dto"
	"roomdesk/internal/domains/room/service"
	"roomdesk/shared/constant"
	"roomdesk/shared/validator"
	"roomdesk/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const (
	messageRoomCreated = "Room created successfully"
	messageRoomUpdated = "Room updated successfully"
	messageRoomDeleted = "Room deleted successfully"

	errorFetchingRooms = "Error fetching rooms"
	errorFetchingRoom  = "Error fetching room"
	errorCreatingRoom  = "Error creating room"
	errorUpdatingRoom  = "Error updating room"
	errorDeletingRoom  = "Error deleting room"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room. The room number must be unique.
// @Tags Room
// @Accept json
// @Produce json
// @Param room body dto.CreateRoomRequest true "Room details"
// @Success 201 {object} response.Envelope{data=dto.RoomResponse} "Room created successfully"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /rooms [post]
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	var req dto.CreateRoomRequest

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request")

		response.WithError(writer, err, errorCreatingRoom)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err, errorCreatingRoom)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithMessageAndData(writer, http.StatusCreated, messageRoomCreated, room)
}

// GetRooms lists rooms filtered by the search, type and status query parameters.
// @Summary List rooms
// @Description List rooms, newest first. An empty filter or "all" matches every value.
// @Tags Room
// @Produce json
// @Param search query string false "Substring of the room number or description"
// @Param type query string false "Room type" Enums(all, single, double, suite, deluxe)
// @Param status query string false "Room status" Enums(all, available, occupied, maintenance)
// @Success 200 {object} response.Envelope{data=[]dto.RoomResponse}
// @Failure 500 {object} response.Envelope
// @Router /rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	query := request.URL.Query()
	filter := dto.Filter{
		Search: query.Get(constant.RequestParamSearch),
		Type:   query.Get(constant.RequestParamType),
		Status: query.Get(constant.RequestParamStatus),
	}

	rooms, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err, errorFetchingRooms)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithList(writer, http.StatusOK, rooms.Count, rooms.Rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope{data=dto.RoomResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /rooms/{id} [get]
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get room by ID")

		response.WithError(writer, err, errorFetchingRoom)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithData(writer, http.StatusOK, room)
}

// UpdateRoom merges the supplied fields into an existing room.
// @Summary Update a room
// @Description Fields left out of the body keep their stored value.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param room body dto.UpdateRoomRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=dto.RoomResponse} "Room updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /rooms/{id} [put]
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	var req dto.UpdateRoomRequest

	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request")

		response.WithError(writer, err, errorUpdatingRoom)

		return
	}

	room, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update room")

		response.WithError(writer, err, errorUpdatingRoom)

		return
	}

	scope.AddEvent("Room updated successfully")

	response.WithMessageAndData(writer, http.StatusOK, messageRoomUpdated, room)
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope "Room deleted successfully"
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /rooms/{id} [delete]
func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete room")

		response.WithError(writer, err, errorDeletingRoom)

		return
	}

	scope.AddEvent("Room deleted successfully")

	response.WithMessage(writer, http.StatusOK, messageRoomDeleted)
}
