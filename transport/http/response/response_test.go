package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomdesk/shared/failure"
	"roomdesk/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestResponses(t *testing.T) {
	tests := []struct {
		name     string
		write    func(w http.ResponseWriter)
		wantCode int
		wantBody string
	}{
		{
			name:     "data",
			write:    func(w http.ResponseWriter) { response.WithData(w, http.StatusOK, map[string]string{"_id": "1"}) },
			wantCode: http.StatusOK,
			wantBody: `{"success":true,"data":{"_id":"1"}}`,
		},
		{
			name:     "empty list keeps count and data",
			write:    func(w http.ResponseWriter) { response.WithList(w, http.StatusOK, 0, []string{}) },
			wantCode: http.StatusOK,
			wantBody: `{"success":true,"count":0,"data":[]}`,
		},
		{
			name:     "message",
			write:    func(w http.ResponseWriter) { response.WithMessage(w, http.StatusOK, "Server is running") },
			wantCode: http.StatusOK,
			wantBody: `{"success":true,"message":"Server is running"}`,
		},
		{
			name: "message and data",
			write: func(w http.ResponseWriter) {
				response.WithMessageAndData(w, http.StatusCreated, "Room created successfully", map[string]int{"price": 10})
			},
			wantCode: http.StatusCreated,
			wantBody: `{"success":true,"message":"Room created successfully","data":{"price":10}}`,
		},
		{
			name:     "expected failure keeps its message",
			write:    func(w http.ResponseWriter) { response.WithError(w, failure.NotFound("Room not found"), "Error fetching room") },
			wantCode: http.StatusNotFound,
			wantBody: `{"success":false,"message":"Room not found"}`,
		},
		{
			name:     "unexpected failure uses fallback and detail",
			write:    func(w http.ResponseWriter) { response.WithError(w, errors.New("connection refused"), "Error fetching rooms") },
			wantCode: http.StatusInternalServerError,
			wantBody: `{"success":false,"message":"Error fetching rooms","error":"connection refused"}`,
		},
		{
			name:     "route not found",
			write:    response.WithRouteNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"success":false,"message":"Route not found"}`,
		},
		{
			name:     "unexpected",
			write:    func(w http.ResponseWriter) { response.WithUnexpected(w, "boom") },
			wantCode: http.StatusInternalServerError,
			wantBody: `{"success":false,"message":"Something went wrong!","error":"boom"}`,
		},
		{
			name:     "rate limited",
			write:    response.WithRequestLimitExceeded,
			wantCode: http.StatusTooManyRequests,
			wantBody: `{"success":false,"message":"REQUEST LIMIT EXCEEDED"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			tt.write(recorder)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}
