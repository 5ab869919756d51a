package handlers

import (
	"net/http"

	"tellsapi/auth"
)

// SystemHandler handles system-related endpoints
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Hello Tells!"))
}

// Protected echoes the caller's token claims. It sits behind auth.Middleware.
func (h *SystemHandler) Protected(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "You have access to this protected route",
		"user":    claims,
	})
}
