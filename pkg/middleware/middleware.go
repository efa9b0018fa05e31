package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// SetChain wraps a handler with the given middlewares, outermost last.
func SetChain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}

	return h
}

// SetRouteChain wraps a route handler with the given per-route middlewares,
// applied right to left.
func SetRouteChain(h http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}

// HTTPResponseTraceInjection copies the active trace id into the response
// header so clients can reference it on support tickets.
func HTTPResponseTraceInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		if sc := span.SpanContext(); sc.HasTraceID() {
			w.Header().Set("X-Trace-Id", sc.TraceID().String())
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

type HTTPRequestLogger struct {
	logger       *logrus.Logger
	debug        bool
	minLogStatus int
}

func NewHTTPRequestLogger(logger *logrus.Logger, debug bool, minLogStatus int) *HTTPRequestLogger {
	return &HTTPRequestLogger{
		logger:       logger,
		debug:        debug,
		minLogStatus: minLogStatus,
	}
}

func (l *HTTPRequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		if !l.debug && rec.statusCode < l.minLogStatus {
			return
		}

		l.logger.WithContext(r.Context()).WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.statusCode,
			"elapsed": time.Since(start).String(),
		}).Info()
	})
}
