package response

import (
	"encoding/json"
	"net/http"
	"roomdesk/shared/constant"
	"roomdesk/shared/failure"
	"roomdesk/shared/logger"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WithData sends a successful response carrying data.
func WithData(writer http.ResponseWriter, code int, data any) {
	response(writer, code, Envelope{Success: true, Data: data})
}

// WithList sends a successful response carrying a collection and its size.
func WithList(writer http.ResponseWriter, code int, count int, data any) {
	response(writer, code, Envelope{Success: true, Count: &count, Data: data})
}

// WithMessage sends a successful response with a simple text message.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope{Success: true, Message: message})
}

// WithMessageAndData sends a successful response with a message and data.
func WithMessageAndData(writer http.ResponseWriter, code int, message string, data any) {
	response(writer, code, Envelope{Success: true, Message: message, Data: data})
}

// WithFailure sends an unsuccessful response with a message.
func WithFailure(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope{Success: false, Message: message})
}

// WithError maps err onto the envelope. Expected failures keep their own message;
// anything else becomes a 500 with fallback as message and the error text as detail.
func WithError(writer http.ResponseWriter, err error, fallback string) {
	if failure.IsExpected(err) {
		WithFailure(writer, failure.GetCode(err), err.Error())

		return
	}

	response(writer, http.StatusInternalServerError, Envelope{
		Success: false,
		Message: fallback,
		Error:   err.Error(),
	})
}

// WithRouteNotFound sends the default response for unmatched routes
func WithRouteNotFound(writer http.ResponseWriter) {
	WithFailure(writer, http.StatusNotFound, constant.ResponseMessageRouteNotFound)
}

// WithUnexpected sends the default response for a recovered panic
func WithUnexpected(writer http.ResponseWriter, detail string) {
	response(writer, http.StatusInternalServerError, Envelope{
		Success: false,
		Message: constant.ResponseMessageUnexpected,
		Error:   detail,
	})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithFailure(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithFailure(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func response(writer http.ResponseWriter, code int, payload Envelope) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
