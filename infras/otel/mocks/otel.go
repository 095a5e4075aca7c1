package mocks

import (
	"roomdesk/infras/otel"

	"go.opentelemetry.io/otel/trace/noop"
)

// NewOtel returns an otel.Otel whose spans are never recorded or exported.
func NewOtel() otel.Otel {
	return otel.NewWithProvider(noop.NewTracerProvider())
}
