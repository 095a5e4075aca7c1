package web

import (
	"errors"
	"net/http"
	"roomdesk/internal/client/room"
	"roomdesk/internal/domains/room/model"
	"roomdesk/shared/constant"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	messageLoadFailed     = "Failed to load rooms"
	messageRequiredFields = "Please fill in all required fields"
	messageRoomCreated    = "Room created successfully"
	messageRoomUpdated    = "Room updated successfully"
	messageRoomDeleted    = "Room deleted successfully"
)

type listPage struct {
	Flash    *Flash
	Filter   room.Filter
	Rooms    []room.Room
	Error    string
	Types    []string
	Statuses []string
}

type formPage struct {
	Flash    *Flash
	ID       string
	Form     formValues
	Error    string
	Types    []string
	Statuses []string
}

type deletePage struct {
	Flash *Flash
	Room  room.Room
}

// formValues mirrors the room form inputs; Price stays a string so bad input is echoed back.
type formValues struct {
	RoomNumber  string
	Type        string
	Price       string
	Status      string
	Description string
}

func defaultForm() formValues {
	return formValues{
		Type:   model.TypeSingle,
		Price:  "0",
		Status: model.StatusAvailable,
	}
}

func formFromRoom(r room.Room) formValues {
	return formValues{
		RoomNumber:  r.RoomNumber,
		Type:        r.Type,
		Price:       strconv.FormatFloat(r.Price, 'f', -1, 64),
		Status:      r.Status,
		Description: r.Description,
	}
}

func formFromRequest(r *http.Request) formValues {
	return formValues{
		RoomNumber:  strings.TrimSpace(r.PostFormValue("roomNumber")),
		Type:        r.PostFormValue("type"),
		Price:       strings.TrimSpace(r.PostFormValue("price")),
		Status:      r.PostFormValue("status"),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
}

// toInput applies the form guard: room number and type set, price above zero.
func (f formValues) toInput() (room.Input, bool) {
	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil || price <= 0 || f.RoomNumber == "" || f.Type == "" {
		return room.Input{}, false
	}

	status := f.Status
	if status == "" {
		status = model.StatusAvailable
	}

	return room.Input{
		RoomNumber:  f.RoomNumber,
		Type:        f.Type,
		Price:       price,
		Status:      status,
		Description: f.Description,
	}, true
}

func (s *Server) ListRooms(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := room.Filter{
		Search: strings.TrimSpace(query.Get(constant.RequestParamSearch)),
		Type:   orAll(query.Get(constant.RequestParamType)),
		Status: orAll(query.Get(constant.RequestParamStatus)),
	}

	page := listPage{
		Flash:    popFlash(writer, request),
		Filter:   filter,
		Types:    model.Types,
		Statuses: model.Statuses,
	}

	rooms, err := s.client.List(request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load rooms")

		page.Error = messageLoadFailed
		s.render(writer, http.StatusOK, pageList, page)

		return
	}

	page.Rooms = rooms
	s.render(writer, http.StatusOK, pageList, page)
}

func (s *Server) NewRoom(writer http.ResponseWriter, request *http.Request) {
	s.renderForm(writer, http.StatusOK, formPage{Flash: popFlash(writer, request), Form: defaultForm()})
}

func (s *Server) EditRoom(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, constant.RequestParamID)

	existing, err := s.client.Get(request.Context(), id)
	if err != nil {
		s.redirectWithError(writer, request, err)

		return
	}

	s.renderForm(writer, http.StatusOK, formPage{Flash: popFlash(writer, request), ID: id, Form: formFromRoom(existing)})
}

func (s *Server) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	s.submit(writer, request, "")
}

func (s *Server) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	s.submit(writer, request, chi.URLParam(request, constant.RequestParamID))
}

func (s *Server) submit(writer http.ResponseWriter, request *http.Request, id string) {
	form := formFromRequest(request)
	page := formPage{ID: id, Form: form}

	input, ok := form.toInput()
	if !ok {
		page.Error = messageRequiredFields
		s.renderForm(writer, http.StatusBadRequest, page)

		return
	}

	var err error

	message := messageRoomCreated
	if id == "" {
		_, err = s.client.Create(request.Context(), input)
	} else {
		message = messageRoomUpdated
		_, err = s.client.Update(request.Context(), id, input)
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to save room")

		page.Error = err.Error()
		s.renderForm(writer, statusFor(err), page)

		return
	}

	s.client.InvalidateRooms()
	setFlash(writer, flashSuccess, message)
	http.Redirect(writer, request, "/rooms", http.StatusSeeOther)
}

func (s *Server) ConfirmDelete(writer http.ResponseWriter, request *http.Request) {
	existing, err := s.client.Get(request.Context(), chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		s.redirectWithError(writer, request, err)

		return
	}

	s.render(writer, http.StatusOK, pageDelete, deletePage{Room: existing})
}

func (s *Server) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, constant.RequestParamID)

	if err := s.client.Delete(request.Context(), id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete room")
		s.redirectWithError(writer, request, err)

		return
	}

	s.client.InvalidateRooms()
	setFlash(writer, flashSuccess, messageRoomDeleted)
	http.Redirect(writer, request, "/rooms", http.StatusSeeOther)
}

func (s *Server) renderForm(writer http.ResponseWriter, code int, page formPage) {
	page.Types = model.Types
	page.Statuses = model.Statuses

	s.render(writer, code, pageForm, page)
}

func (s *Server) redirectWithError(writer http.ResponseWriter, request *http.Request, err error) {
	setFlash(writer, flashError, err.Error())
	http.Redirect(writer, request, "/rooms", http.StatusSeeOther)
}

func statusFor(err error) int {
	var apiErr *room.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return http.StatusBadGateway
}

func orAll(value string) string {
	if value == "" {
		return constant.FilterAll
	}

	return value
}
