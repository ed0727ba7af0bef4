package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/reosaurous172214/xnote-server/internal/logger"
	"github.com/reosaurous172214/xnote-server/internal/metrics"
)

// Logging logs every request and records its duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware instance.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle wraps next with request logging and duration metrics.
func (m *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		metrics.ObserveRequest(r.Method, r.URL.Path, strconv.Itoa(status), duration.Seconds())

		m.logger.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", duration.String())
	})
}
