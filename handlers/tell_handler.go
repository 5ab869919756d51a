package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"tellsapi/dto"
	"tellsapi/logger"
	"tellsapi/models"
	"tellsapi/monitoring"
	"tellsapi/repositories"
)

// TellHandler handles tell-related endpoints
type TellHandler struct {
	Tells repositories.TellRepository
}

func NewTellHandler(tells repositories.TellRepository) *TellHandler {
	return &TellHandler{Tells: tells}
}

func (h *TellHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTellRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.SenderID == "" || req.ReceiverID == "" || req.Message == "" || req.UserName == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	status := models.TellPending
	if req.Status != nil {
		status = models.TellStatus(*req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}

	tell := &models.Tell{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		Status:     status,
		UserName:   req.UserName,
	}
	if err := h.Tells.Create(r.Context(), tell); err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("Error creating tell")
		writeError(w, http.StatusInternalServerError, "An error occurred while creating the tell")
		return
	}

	monitoring.TellsCreated.Inc()
	writeJSON(w, http.StatusOK, tell)
}

// Inbox lists every pending tell.
func (h *TellHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	tells, err := h.Tells.ListByStatus(r.Context(), models.TellPending)
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("failed to list inbox")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if len(tells) == 0 {
		writeMessage(w, http.StatusOK, "No tells found with status false")
		return
	}
	writeJSON(w, http.StatusOK, tells)
}

// Reply answers a pending tell. A tell can be answered once.
func (h *TellHandler) Reply(w http.ResponseWriter, r *http.Request) {
	id, ok := tellID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid tell or tell already answered")
		return
	}

	var req dto.ReplyRequest
	if err := decodeJSON(r, &req); err != nil || req.Reply == "" {
		writeError(w, http.StatusBadRequest, "Reply is required")
		return
	}

	tell, err := h.Tells.Answer(r.Context(), id, req.Reply)
	if err != nil {
		if repositories.IsConflict(err) {
			writeError(w, http.StatusBadRequest, "Invalid tell or tell already answered")
			return
		}
		logger.FromContext(r.Context()).WithError(err).Error("failed to answer tell")
		writeError(w, http.StatusInternalServerError, "An error occurred while replying to the tell")
		return
	}

	monitoring.TellsAnswered.Inc()
	writeJSON(w, http.StatusOK, tell)
}

// Answered lists the answered tells received by a user.
func (h *TellHandler) Answered(w http.ResponseWriter, r *http.Request) {
	tells, err := h.Tells.ListAnswered(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("failed to list answered tells")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if len(tells) == 0 {
		writeMessage(w, http.StatusOK, "No answered tells found for this user")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewAnsweredTells(tells))
}

func (h *TellHandler) React(w http.ResponseWriter, r *http.Request) {
	h.increment(w, r, repositories.ReactCounter, "react")
}

func (h *TellHandler) Comment(w http.ResponseWriter, r *http.Request) {
	h.increment(w, r, repositories.CommentCounter, "comment")
}

func (h *TellHandler) increment(w http.ResponseWriter, r *http.Request, counter repositories.Counter, kind string) {
	id, ok := tellID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Tell not found")
		return
	}

	tell, err := h.Tells.Increment(r.Context(), id, counter)
	if err != nil {
		if repositories.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Tell not found")
			return
		}
		logger.FromContext(r.Context()).WithError(err).WithField("counter", counter).Error("failed to update tell")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	monitoring.TellInteractions.WithLabelValues(kind).Inc()
	writeJSON(w, http.StatusOK, tell)
}

func (h *TellHandler) Counts(w http.ResponseWriter, r *http.Request) {
	id, ok := tellID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Tell not found")
		return
	}

	tell, err := h.Tells.FindByID(r.Context(), id)
	if err != nil {
		if repositories.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Tell not found")
			return
		}
		logger.FromContext(r.Context()).WithError(err).Error("failed to fetch tell")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, dto.CountsDTO{ReactCount: tell.ReactCount, CommentCount: tell.CommentCount})
}
