// file: handler/auth_handler.go

package handler

import (
	"encoding/json"
	"errors"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	service service.IAuthService
}

// NewAuthHandler creates a new AuthHandler with its dependencies.
func NewAuthHandler(s service.IAuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// mapAuthError translates service-level sentinel errors into HTTP responses.
func mapAuthError(err error, fallback string) *common.AppError {
	switch {
	case errors.Is(err, service.ErrEmailInUse):
		return common.NewAppError(http.StatusConflict, err.Error(), err)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrRefreshTokenExpired):
		return common.NewAppError(http.StatusUnauthorized, err.Error(), err)
	case errors.Is(err, service.ErrUserNotFound):
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user and returns an access token (15m) plus a single-use refresh token (30d).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register body model.RegisterRequest true "Registration details"
// @Success      201  {object}  model.AuthResponse
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      409  {object}  common.AppError "Email already in use"
// @Failure      500  {object}  common.AppError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	logger.Log.WithField("email", req.Email).Info("Register request received")

	resp, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err, "Could not register user")
	}

	writeJSON(w, http.StatusCreated, resp)
	return nil
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a fresh access/refresh token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login body model.LoginRequest true "Login credentials"
// @Success      200  {object}  model.AuthResponse
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      401  {object}  common.AppError "Invalid credentials"
// @Failure      500  {object}  common.AppError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	resp, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err, "Could not log in")
	}

	writeJSON(w, http.StatusOK, resp)
	return nil
}

// Refresh godoc
// @Summary      Rotate the refresh token
// @Description  Redeems a refresh token for a new pair. Each refresh token is single-use; replaying it fails with 401.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refresh body model.RefreshRequest true "Raw refresh token"
// @Success      200  {object}  model.AuthResponse
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      401  {object}  common.AppError "Invalid or expired refresh token"
// @Failure      500  {object}  common.AppError
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		return mapAuthError(err, "Could not refresh tokens")
	}

	writeJSON(w, http.StatusOK, resp)
	return nil
}

// Logout godoc
// @Summary      Log out
// @Description  Invalidates a single refresh token. Idempotent: logging out an unknown or already-removed token still succeeds.
// @Tags         auth
// @Accept       json
// @Param        logout body model.RefreshRequest true "Raw refresh token"
// @Success      204  "No Content"
// @Failure      400  {object}  common.AppError "Invalid request body"
// @Failure      500  {object}  common.AppError
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not log out", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// LogoutAll godoc
// @Summary      Log out from all devices
// @Description  Revokes every refresh token owned by the authenticated user.
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "No Content"
// @Failure      401  {object}  common.AppError "Invalid or missing token"
// @Failure      500  {object}  common.AppError
// @Router       /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	logger.Log.WithField("user_id", userID).Info("Logout-all request received")

	if err := h.service.LogoutAll(r.Context(), userID); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not log out from all devices", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Me godoc
// @Summary      Get the current user
// @Description  Returns the user's record read fresh from the database, not from the access token's claims.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Failure      401  {object}  common.AppError "Invalid or missing token"
// @Failure      404  {object}  common.AppError "User no longer exists"
// @Failure      500  {object}  common.AppError
// @Router       /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	user, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		return mapAuthError(err, "Could not fetch user")
	}

	writeJSON(w, http.StatusOK, user)
	return nil
}
