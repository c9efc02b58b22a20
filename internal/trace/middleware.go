package trace

import (
	"net/http"
	"runtime/debug"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Middleware struct {
	logger *zap.Logger
	tracer trace.Tracer
	debug  bool
}

func NewMiddleware(logger *zap.Logger, debug bool) *Middleware {
	return &Middleware{
		logger: logger,
		tracer: otel.Tracer("trace/middleware"),
		debug:  debug,
	}
}

// TraceMiddleware starts a server span per request and propagates any
// incoming trace context from the request headers.
func (m *Middleware) TraceMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propagator := propagation.TraceContext{}
		ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := m.tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer span.End()

		next(w, r.WithContext(ctx))
	}
}

func (m *Middleware) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger := logutil.WithContext(r.Context(), m.logger)
				logger.Error("Recovered from panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				if m.debug {
					logger.Error("Panic stack trace", zap.String("stack", string(debug.Stack())))
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		next(w, r)
	}
}
