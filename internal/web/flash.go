package web

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	flashCookie = "roomdesk_flash"
	flashMaxAge = 30

	flashSuccess = "success"
	flashError   = "error"
)

type Flash struct {
	Kind    string
	Message string
}

func setFlash(writer http.ResponseWriter, kind, message string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads the pending notification and clears it.
func popFlash(writer http.ResponseWriter, request *http.Request) *Flash {
	cookie, err := request.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(writer, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	kind, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}

	return &Flash{Kind: kind, Message: message}
}
