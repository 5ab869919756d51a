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

// FollowHandler maintains the follow graph
type FollowHandler struct {
	Users   repositories.UserRepository
	Follows repositories.FollowRepository
	UoW     repositories.UnitOfWork
}

func NewFollowHandler(users repositories.UserRepository, follows repositories.FollowRepository, uow repositories.UnitOfWork) *FollowHandler {
	return &FollowHandler{Users: users, Follows: follows, UoW: uow}
}

// resolvePair looks up both handles. It writes the response and returns false
// when either is missing or the lookup fails.
func (h *FollowHandler) resolvePair(w http.ResponseWriter, r *http.Request, req dto.FollowRequest) (follower, following *models.User, ok bool) {
	var err error
	if follower, err = h.Users.FindByUserName(r.Context(), req.FollowerName); err == nil {
		following, err = h.Users.FindByUserName(r.Context(), req.FollowingName)
	}
	if err != nil {
		if repositories.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "One or both users not found")
			return nil, nil, false
		}
		logger.FromContext(r.Context()).WithError(err).Error("failed to resolve users")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return nil, nil, false
	}
	return follower, following, true
}

func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req dto.FollowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FollowerName == "" || req.FollowingName == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.FollowerName == req.FollowingName {
		writeError(w, http.StatusBadRequest, "Cannot follow yourself")
		return
	}

	follower, following, ok := h.resolvePair(w, r, req)
	if !ok {
		return
	}

	exists, err := h.Follows.Exists(r.Context(), follower.UserID, following.UserID)
	if err != nil {
		log.WithError(err).Error("failed to check following")
		writeError(w, http.StatusInternalServerError, "An error occurred while following the user")
		return
	}
	if exists {
		writeMessage(w, http.StatusConflict, "User is already following")
		return
	}

	err = h.UoW.Do(r.Context(), func(s repositories.Stores) error {
		if err := s.Follows.Create(r.Context(), follower, following); err != nil {
			return err
		}
		return s.Users.AdjustFollowers(r.Context(), following.UserID, 1)
	})
	if err != nil {
		if repositories.IsDuplicate(err) {
			writeMessage(w, http.StatusConflict, "User is already following")
			return
		}
		log.WithError(err).Error("Error following user")
		writeError(w, http.StatusInternalServerError, "An error occurred while following the user")
		return
	}

	monitoring.GraphChanges.WithLabelValues("follow").Inc()
	writeMessage(w, http.StatusOK, "User followed successfully")
}

func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req dto.FollowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FollowerName == "" || req.FollowingName == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	follower, following, ok := h.resolvePair(w, r, req)
	if !ok {
		return
	}

	exists, err := h.Follows.Exists(r.Context(), follower.UserID, following.UserID)
	if err != nil {
		log.WithError(err).Error("failed to check following")
		writeError(w, http.StatusInternalServerError, "An error occurred while unfollowing the user")
		return
	}
	if !exists {
		writeMessage(w, http.StatusConflict, "User is not following")
		return
	}

	err = h.UoW.Do(r.Context(), func(s repositories.Stores) error {
		if err := s.Follows.Delete(r.Context(), follower.UserID, following.UserID); err != nil {
			return err
		}
		err := s.Users.AdjustFollowers(r.Context(), following.UserID, -1)
		if repositories.IsConflict(err) {
			log.WithError(err).WithField("user_id", following.UserID).
				Warn("follower counter already at zero, edge removed anyway")
			return nil
		}
		return err
	})
	if err != nil {
		log.WithError(err).Error("Error unfollowing user")
		writeError(w, http.StatusInternalServerError, "An error occurred while unfollowing the user")
		return
	}

	monitoring.GraphChanges.WithLabelValues("unfollow").Inc()
	writeMessage(w, http.StatusOK, "User unfollowed successfully")
}

// ListFollowing returns who a user follows, with each target's handle and email.
func (h *FollowHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.FindByUserName(r.Context(), mux.Vars(r)["userName"])
	if err != nil {
		if repositories.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logger.FromContext(r.Context()).WithError(err).Error("failed to fetch user")
		writeError(w, http.StatusInternalServerError, "An error occurred while fetching following relationships")
		return
	}

	rows, err := h.Follows.ListFollowing(r.Context(), user.UserID)
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("Error fetching following")
		writeError(w, http.StatusInternalServerError, "An error occurred while fetching following relationships")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewFollowing(rows))
}
