package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	SignupSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signup_success_total",
		Help: "Total successful signups",
	})

	LoginSuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "login_success_total",
		Help: "Total successful login attempts",
	})

	LoginFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_failure_total",
		Help: "Total failed login attempts",
	}, []string{"reason"})

	TellsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tells_created_total",
		Help: "Total tells successfully sent",
	})

	TellsAnswered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tells_answered_total",
		Help: "Total tells replied to",
	})

	TellInteractions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tell_interactions_total",
		Help: "Reactions and comments recorded on tells",
	}, []string{"kind"})

	GraphChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "follow_graph_changes_total",
		Help: "Follow and unfollow operations applied",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(SignupSuccess)
	prometheus.MustRegister(LoginSuccess)
	prometheus.MustRegister(LoginFailure)
	prometheus.MustRegister(TellsCreated)
	prometheus.MustRegister(TellsAnswered)
	prometheus.MustRegister(TellInteractions)
	prometheus.MustRegister(GraphChanges)
}

// Middleware to track request timing and status code
type statusRecordingWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// InstrumentHandler is meant to run as router middleware so the route label is
// the path template rather than the raw path.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecordingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}
