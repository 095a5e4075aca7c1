package room

//go:generate go run go.uber.org/mock/mockgen -source=./client.go -destination=./mocks/client_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"roomdesk/config"
	"roomdesk/infras/otel"
	"roomdesk/shared"
	"roomdesk/shared/constant"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName  = "client.room"
	roomsPath      = "/rooms"
	roomPath       = "/rooms/{id}"
	cacheListRooms = "rooms"
)

var ErrUnexpectedResponse = errors.New("unexpected response from room api")

// Room is a room record as returned by the backend.
type Room struct {
	ID          string  `json:"_id"`
	RoomNumber  string  `json:"roomNumber"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// Input is the payload for create and update calls.
type Input struct {
	RoomNumber  string  `json:"roomNumber"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
}

type Filter struct {
	Search string
	Type   string
	Status string
}

// APIError carries the backend message of a failed call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure where no envelope was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("room api unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type Client interface {
	List(ctx context.Context, filter Filter) ([]Room, error)
	Get(ctx context.Context, id string) (Room, error)
	Create(ctx context.Context, input Input) (Room, error)
	Update(ctx context.Context, id string, input Input) (Room, error)
	Delete(ctx context.Context, id string) error
	InvalidateRooms()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type clientImpl struct {
	http  *resty.Client
	rooms *ccache.Cache[[]Room]
	ttl   time.Duration
	otel  otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Client {
	web := cfg.Web

	httpClient := resty.New().
		SetBaseURL(web.APIBaseURL).
		SetTimeout(time.Duration(web.ClientTimeoutSeconds)*time.Second).
		SetHeader(constant.RequestHeaderContentType, constant.ContentTypeJSON).
		SetHeader(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	return &clientImpl{
		http:  httpClient,
		rooms: ccache.New(ccache.Configure[[]Room]().MaxSize(web.ListCacheMaxEntries)),
		ttl:   time.Duration(web.ListCacheTTLSeconds) * time.Second,
		otel:  otel,
	}
}

// List returns rooms matching filter, served from the local cache while it is fresh.
func (c *clientImpl) List(ctx context.Context, filter Filter) (rooms []Room, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(cacheListRooms, filter.Search, filter.Type, filter.Status)

	if item := c.rooms.Get(key); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	request := c.http.R().SetContext(ctx)
	setQuery(request, constant.RequestParamSearch, filter.Search)
	setQuery(request, constant.RequestParamType, filter.Type)
	setQuery(request, constant.RequestParamStatus, filter.Status)

	rooms = []Room{}
	if err = c.do(request, http.MethodGet, roomsPath, &rooms); err != nil {
		return nil, err
	}

	c.rooms.Set(key, rooms, c.ttl)

	return rooms, nil
}

func (c *clientImpl) Get(ctx context.Context, id string) (room Room, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	request := c.http.R().SetContext(ctx).SetPathParam(constant.RequestParamID, id)
	err = c.do(request, http.MethodGet, roomPath, &room)

	return room, err
}

func (c *clientImpl) Create(ctx context.Context, input Input) (room Room, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	request := c.http.R().SetContext(ctx).SetBody(input)
	err = c.do(request, http.MethodPost, roomsPath, &room)

	return room, err
}

func (c *clientImpl) Update(ctx context.Context, id string, input Input) (room Room, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	request := c.http.R().SetContext(ctx).SetPathParam(constant.RequestParamID, id).SetBody(input)
	err = c.do(request, http.MethodPut, roomPath, &room)

	return room, err
}

func (c *clientImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	request := c.http.R().SetContext(ctx).SetPathParam(constant.RequestParamID, id)

	return c.do(request, http.MethodDelete, roomPath, nil)
}

// InvalidateRooms drops every cached list so the next List call refetches.
func (c *clientImpl) InvalidateRooms() {
	removed := c.rooms.DeletePrefix(cacheListRooms)
	log.Debug().Int("entries", removed).Msg("room list cache invalidated")
}

func (c *clientImpl) do(request *resty.Request, method, path string, out any) error {
	var body envelope

	response, err := request.SetResult(&body).SetError(&body).Execute(method, path)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("room api request failed")

		return &NetworkError{Err: err}
	}

	if response.IsError() || !body.Success {
		message := body.Message
		if message == "" {
			message = fmt.Sprintf("%s: %s", ErrUnexpectedResponse, response.Status())
		}

		return &APIError{StatusCode: response.StatusCode(), Message: message}
	}

	if out == nil || len(body.Data) == 0 {
		return nil
	}

	if err = json.Unmarshal(body.Data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	return nil
}

func setQuery(request *resty.Request, key, value string) {
	if value != "" {
		request.SetQueryParam(key, value)
	}
}
