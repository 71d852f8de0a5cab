package handler

import (
	"errors"
	"net/http"

	"github.com/agendago/agenda-go/internal/middleware"
	"github.com/agendago/agenda-go/internal/model"
	"github.com/agendago/agenda-go/internal/service"
)

// AuthHandler handles HTTP requests for registration and authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleDecodeError(w, err)
		return
	}

	user, token, err := h.service.Register(r.Context(), req)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			respondValidation(w, ve)
			return
		}
		respondInternal(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Usuario registrado exitosamente", model.AuthData{
		User:  model.NewUserResponse(user),
		Token: token,
	})
}

// HandleLogin handles POST /api/auth/login requests. A failed login carries
// the same generic message whether the email is unknown or the password is
// wrong.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleDecodeError(w, err)
		return
	}

	user, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Las credenciales proporcionadas son incorrectas.")
			return
		}
		respondInternal(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Inicio de sesión exitoso", model.AuthData{
		User:  model.NewUserResponse(user),
		Token: token,
	})
}

// HandleLogout handles POST /api/auth/logout requests, revoking exactly the
// token that authenticated this request.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := middleware.TokenIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	if err := h.service.Logout(r.Context(), tokenID); err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			respondError(w, http.StatusUnauthorized, "No autenticado.")
			return
		}
		respondInternal(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Sesión cerrada exitosamente", nil)
}

// HandleMe handles GET /api/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			respondError(w, http.StatusUnauthorized, "No autenticado.")
			return
		}
		respondInternal(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]any{
		"user": model.NewUserResponse(user),
	})
}
