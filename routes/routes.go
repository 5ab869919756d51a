package routes

import (
	"net/http"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"tellsapi/handlers"
	"tellsapi/logger"
	"tellsapi/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(
	userHandler *handlers.UserHandler,
	tellHandler *handlers.TellHandler,
	followHandler *handlers.FollowHandler,
	systemHandler *handlers.SystemHandler,
	requireAuth func(http.Handler) http.Handler,
	log *logrus.Logger,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()
	router.Use(monitoring.InstrumentHandler)

	router.HandleFunc("/", systemHandler.Root).Methods("GET")

	// User routes
	router.HandleFunc("/signup", userHandler.Signup).Methods("POST")
	router.HandleFunc("/login", userHandler.Login).Methods("POST")
	router.HandleFunc("/users/{userId}/username", userHandler.GetUserName).Methods("GET")

	// Tell routes
	router.HandleFunc("/tells", tellHandler.Create).Methods("POST")
	router.HandleFunc("/private/inbox", tellHandler.Inbox).Methods("GET")
	router.HandleFunc("/tells/{tellId:[0-9]+}", tellHandler.Reply).Methods("POST")
	router.HandleFunc("/tells/{tellId:[0-9]+}/react", tellHandler.React).Methods("PATCH")
	router.HandleFunc("/tells/{tellId:[0-9]+}/comment", tellHandler.Comment).Methods("PATCH")
	router.HandleFunc("/tells/{tellId:[0-9]+}/counts", tellHandler.Counts).Methods("GET")
	router.HandleFunc("/tells/{userId}", tellHandler.Answered).Methods("GET")

	// Follow graph routes
	router.HandleFunc("/follow", followHandler.Follow).Methods("POST")
	router.HandleFunc("/unfollow", followHandler.Unfollow).Methods("POST")
	router.HandleFunc("/following/{userName}", followHandler.ListFollowing).Methods("GET")

	router.Handle("/protected-route", requireAuth(http.HandlerFunc(systemHandler.Protected))).Methods("GET")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins(allowedOrigins),
		ghandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "OPTIONS"}),
		ghandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		ghandlers.ExposedHeaders([]string{logger.RequestIDHeader}),
	)
	return cors(logger.Middleware(log)(router))
}
