package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/manasmitra/backend/internal/middleware"
	authservice "github.com/manasmitra/backend/internal/service/auth"
	"github.com/manasmitra/backend/pkg/utils"
)

// Handler serves registration, login, token refresh and profile lookup.
type Handler struct {
	svc *authservice.Service
}

// New creates the auth handler.
func New(svc *authservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the auth endpoints; /me sits behind the bearer-token
// middleware.
func (h *Handler) RegisterRoutes(r chi.Router, tokens middleware.Validator) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/token/refresh", h.handleRefresh)
		r.With(middleware.RequireAuth(tokens)).Get("/me", h.handleMe)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input authservice.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.svc.Register(r.Context(), input)
	if err != nil {
		var verr *authservice.ValidationError
		if errors.As(err, &verr) {
			utils.RespondJSON(w, http.StatusBadRequest, map[string]string{verr.Field: verr.Message})
			return
		}
		log.Printf("[auth] registration failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, u)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := h.svc.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		log.Printf("[auth] login failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, pair)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Refresh == "" {
		utils.RespondError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	access, err := h.svc.Refresh(payload.Refresh)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	u, err := h.svc.CurrentUser(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, u)
}
