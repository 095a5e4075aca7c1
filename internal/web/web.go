package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"roomdesk/config"
	"roomdesk/internal/client/room"
	"roomdesk/transport/http/middleware"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	pageList   = "list.html"
	pageForm   = "form.html"
	pageDelete = "delete.html"
	layout     = "layout.html"

	readHeaderTimeout = 10 * time.Second
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server renders the room management pages on top of the room api client.
type Server struct {
	config     *config.Config
	client     room.Client
	middleware middleware.AppMiddleware
	pages      map[string]*template.Template
}

func New(cfg *config.Config, client room.Client, appMiddleware middleware.AppMiddleware) (*Server, error) {
	pages, err := parsePages(templatesFS)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:     cfg,
		client:     client,
		middleware: appMiddleware,
		pages:      pages,
	}, nil
}

func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"price": formatPrice,
		"label": label,
	}

	pages := make(map[string]*template.Template)

	for _, page := range []string{pageList, pageForm, pageDelete} {
		tmpl, err := template.New(layout).Funcs(funcs).ParseFS(fsys, "templates/"+layout, "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		pages[page] = tmpl
	}

	return pages, nil
}

func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(chiMiddleware.RequestID)
	mux.Use(s.middleware.Recover)
	mux.Use(s.middleware.Logger)
	mux.Use(s.middleware.BodyLimit)

	mux.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, "/rooms", http.StatusFound)
	})

	mux.Route("/rooms", func(r chi.Router) {
		r.Get("/", s.ListRooms)
		r.Post("/", s.CreateRoom)
		r.Get("/new", s.NewRoom)
		r.Get("/{id}/edit", s.EditRoom)
		r.Post("/{id}", s.UpdateRoom)
		r.Get("/{id}/delete", s.ConfirmDelete)
		r.Post("/{id}/delete", s.DeleteRoom)
	})

	return mux
}

func (s *Server) Serve() {
	server := &http.Server{
		Addr:              net.JoinHostPort(s.config.Server.Host, s.config.Web.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info().Str("port", s.config.Web.Port).Str("api", s.config.Web.APIBaseURL).Msg("Starting up web UI.")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start web UI")
	}
}

func (s *Server) render(writer http.ResponseWriter, code int, page string, data any) {
	var buf strings.Builder

	if err := s.pages[page].ExecuteTemplate(&buf, layout, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("failed to render page")
		http.Error(writer, "Something went wrong!", http.StatusInternalServerError)

		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(code)
	_, _ = writer.Write([]byte(buf.String()))
}

func formatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

func label(value string) string {
	if value == "" {
		return value
	}

	return strings.ToUpper(value[:1]) + value[1:]
}
