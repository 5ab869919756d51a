package logger

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id logged as http.req.id back to the client.
const RequestIDHeader = "X-Request-Id"

type ctxKeyLog struct{}
type ctxKeyRequestID struct{}

type responseRecorder struct {
	b      int
	status int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.b += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

// Middleware tags every request with an id and a request-scoped log entry.
func Middleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			start := time.Now()
			rr := &responseRecorder{w: w}
			w.Header().Set(RequestIDHeader, requestID)

			entry := log.WithFields(logrus.Fields{
				"http.req.path":   r.URL.Path,
				"http.req.method": r.Method,
				"http.req.id":     requestID,
			})
			entry.Debug("request started")
			defer func() {
				entry.WithFields(logrus.Fields{
					"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
					"http.resp.status":  rr.status,
					"http.resp.bytes":   rr.b,
				}).Info("request complete")
			}()

			ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, requestID)
			ctx = context.WithValue(ctx, ctxKeyLog{}, entry)
			next.ServeHTTP(rr, r.WithContext(ctx))
		})
	}
}

// FromContext returns the request-scoped entry, or the standard logger when the
// request did not pass through Middleware.
func FromContext(ctx context.Context) logrus.FieldLogger {
	if entry, ok := ctx.Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return entry
	}
	return logrus.StandardLogger()
}

// RequestID returns the id assigned by Middleware, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}
