// HTTP-хендлеры регистрации, логина и проверки токена
package api

import (
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/metrics"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-authflow/internal/shared/models"
)

// MsgBodyTooLarge — тело запроса превысило server.max_body_bytes.
const MsgBodyTooLarge = "Request body too large"

// Signup обрабатывает регистрацию пользователя.
//
// @Summary      Register user
// @Description  Creates a user with name, email and password. No token is issued at signup.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.SignupRequest true "Signup request"
// @Success      201 {object} models.MessageResponse "User registered successfully"
// @Failure      400 {object} models.ErrorsResponse "Validation errors"
// @Failure      400 {object} models.MessageResponse "User already exists or bad JSON"
// @Failure      413 {object} models.MessageResponse "Request body too large"
// @Failure      500 {object} models.MessageResponse "Server error"
// @Router       /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.badBody(w, metrics.OpSignup, err)
		return
	}

	_, err := h.Svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var verr *serr.ValidationError
		switch {
		case errors.As(err, &verr):
			h.record(metrics.OpSignup, metrics.OutcomeInvalidInput)
			WriteValidation(w, verr)
		case errors.Is(err, serr.ErrAlreadyExists):
			h.record(metrics.OpSignup, metrics.OutcomeDuplicate)
			WriteMessage(w, http.StatusBadRequest, models.MsgUserExists)
		default:
			h.serverError(w, r, metrics.OpSignup, err)
		}
		return
	}

	h.record(metrics.OpSignup, metrics.OutcomeSuccess)
	WriteMessage(w, http.StatusCreated, models.MsgRegistered)
}

// Login обрабатывает вход пользователя и выдачу токена.
//
// @Summary      Login
// @Description  Verifies email and password and returns a signed bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} models.ErrorsResponse "Validation errors"
// @Failure      400 {object} models.MessageResponse "Invalid credentials or bad JSON"
// @Failure      413 {object} models.MessageResponse "Request body too large"
// @Failure      500 {object} models.MessageResponse "Server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.badBody(w, metrics.OpLogin, err)
		return
	}

	res, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var verr *serr.ValidationError
		switch {
		case errors.As(err, &verr):
			h.record(metrics.OpLogin, metrics.OutcomeInvalidInput)
			WriteValidation(w, verr)
		case errors.Is(err, serr.ErrInvalidCredentials):
			h.record(metrics.OpLogin, metrics.OutcomeInvalidCredentials)
			WriteMessage(w, http.StatusBadRequest, models.MsgInvalidCredentials)
		default:
			h.serverError(w, r, metrics.OpLogin, err)
		}
		return
	}

	h.record(metrics.OpLogin, metrics.OutcomeSuccess)
	WriteJSON(w, http.StatusOK, models.LoginResponse{
		Token: res.Token,
		Msg:   models.MsgLoginOK,
	})
}

// Me возвращает владельца bearer токена.
//
// @Summary      Current user
// @Description  Returns the user id and expiry of the presented bearer token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.MeResponse
// @Failure      401 {object} models.MessageResponse "Missing, invalid or expired token"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.record(metrics.OpMe, metrics.OutcomeUnauthorized)
		WriteMessage(w, http.StatusUnauthorized, middleware.MsgMissingToken)
		return
	}

	h.record(metrics.OpMe, metrics.OutcomeSuccess)
	WriteJSON(w, http.StatusOK, models.MeResponse{
		ID:        claims.Subject,
		ExpiresAt: claims.ExpiresAt.UTC(),
	})
}

// badBody отвечает на нечитаемое тело: слишком большое — 413, иначе 400.
func (h *Handler) badBody(w http.ResponseWriter, operation string, err error) {
	h.record(operation, metrics.OutcomeInvalidInput)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteMessage(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
		return
	}
	WriteMessage(w, http.StatusBadRequest, models.MsgInvalidBody)
}
