package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tellsapi/dto"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.MessageResponse{Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// tellID reads the numeric {tellId} path variable. Routes constrain it to
// digits, so a parse failure means the value overflowed.
func tellID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["tellId"], 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
