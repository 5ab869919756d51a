package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"tellsapi/auth"
	"tellsapi/dto"
	"tellsapi/logger"
	"tellsapi/models"
	"tellsapi/monitoring"
	"tellsapi/repositories"
)

// UserHandler serves signup, login and user lookups
type UserHandler struct {
	Users  repositories.UserRepository
	Hasher auth.PasswordHasher
	Tokens *auth.TokenCodec
}

func NewUserHandler(users repositories.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenCodec) *UserHandler {
	return &UserHandler{Users: users, Hasher: hasher, Tokens: tokens}
}

// Signup creates an account. Email and user_name must be unused.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req dto.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" || req.UserName == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	hashed, err := h.Hasher.Hash(req.Password)
	if err != nil {
		log.WithError(err).Error("failed to hash password")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &models.User{
		Email:    req.Email,
		UserName: req.UserName,
		Password: hashed,
	}
	if err := h.Users.Create(r.Context(), user); err != nil {
		if repositories.IsDuplicate(err) {
			log.WithField("email", req.Email).Info("unique constraint violation, user not created")
			writeMessage(w, http.StatusConflict, "Email already exists")
			return
		}
		log.WithError(err).Error("failed to create user")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	monitoring.SignupSuccess.Inc()
	log.WithField("user_id", user.UserID).Info("user created")
	writeMessage(w, http.StatusOK, fmt.Sprintf("%s created successfully", user.Email))
}

// Login exchanges email and password for a bearer token. An unknown email is
// reported as 404; every other failure is reported as 401 "Invalid credentials".
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		monitoring.LoginFailure.WithLabelValues("bad_request").Inc()
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	user, err := h.Users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if repositories.IsNotFound(err) {
			monitoring.LoginFailure.WithLabelValues("unknown_user").Inc()
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.WithError(err).Error("login lookup failed")
		monitoring.LoginFailure.WithLabelValues("error").Inc()
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.Hasher.Compare(user.Password, req.Password); err != nil {
		monitoring.LoginFailure.WithLabelValues("bad_password").Inc()
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.Tokens.Issue(user.Email)
	if err != nil {
		log.WithError(err).Error("failed to sign token")
		monitoring.LoginFailure.WithLabelValues("error").Inc()
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	monitoring.LoginSuccess.Inc()
	writeJSON(w, http.StatusOK, dto.LoginResponse{Message: "Login successful", Token: token})
}

func (h *UserHandler) GetUserName(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.FindByID(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		if repositories.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logger.FromContext(r.Context()).WithError(err).Error("failed to fetch user")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, dto.UserNameDTO{UserName: user.UserName})
}
