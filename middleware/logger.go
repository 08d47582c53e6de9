package middleware

import (
	"net/http"
	"time"

	"playlist-api-go/stats"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ResponseRecorder wraps http.ResponseWriter to capture status code and body size
type ResponseRecorder struct {
	http.ResponseWriter
	StatusCode int
	BodySize   int
}

// NewResponseRecorder creates a recorder with a 200 default status
func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{
		ResponseWriter: w,
		StatusCode:     http.StatusOK,
	}
}

func (r *ResponseRecorder) WriteHeader(statusCode int) {
	r.StatusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *ResponseRecorder) Write(data []byte) (int, error) {
	n, err := r.ResponseWriter.Write(data)
	r.BodySize += n
	return n, err
}

// getStatusColor returns an ANSI color code for a status code class
func getStatusColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "\033[32m" // green
	case statusCode >= 300 && statusCode < 400:
		return "\033[36m" // cyan
	case statusCode >= 400 && statusCode < 500:
		return "\033[33m" // yellow
	case statusCode >= 500:
		return "\033[31m" // red
	default:
		return "\033[0m"
	}
}

// LoggingMiddleware logs every request with a generated request id,
// latency, status, and body size, and feeds the stats counters.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		rec := NewResponseRecorder(w)
		rec.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(rec, r)

		duration := time.Since(start)

		s := stats.Get()
		s.RecordRequest(r.URL.Path)
		s.RecordStatusCode(rec.StatusCode)
		s.RecordResponseTime(duration, r.URL.Path)

		statusColor := getStatusColor(rec.StatusCode)
		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.StatusCode,
			"size":       rec.BodySize,
			"duration":   duration.String(),
			"remote":     r.RemoteAddr,
		}).Infof("%s%d\033[0m %s %s", statusColor, rec.StatusCode, r.Method, r.URL.Path)
	})
}
