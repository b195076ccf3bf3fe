// FilePath: api/resources/api.resource.auth.go
package resources

import (
	"encoding/json"
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/fleetservice"
	"github.com/vaudience/fleethub/internal/models"
)

// AuthHandlers encapsulates the authentication HTTP handlers
type AuthHandlers struct {
	fleetservice *fleetservice.FleetService
}

// @Summary Register a new user account
// @Description Create a user account with a unique username and email
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body models.UserRegistration true "Account details"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /auth/register [post]
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var reg models.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if _, err := h.fleetservice.Register(r.Context(), &reg); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "user registered successfully"})
}

// @Summary Log in
// @Description Exchange username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body models.UserLogin true "Credentials"
// @Success 200 {object} fleetservice.TokenResponse
// @Failure 401 {object} errors.APIError
// @Router /auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var login models.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	token, err := h.fleetservice.Login(r.Context(), &login)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, token)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// @Summary Request a password reset
// @Description Issue a short-lived single-use reset token for a known email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body forgotPasswordRequest true "Account email"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errors.APIError
// @Router /auth/forgot-password [post]
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.fleetservice.ForgotPassword(r.Context(), req.Email); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "password reset token issued"})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// @Summary Confirm a password reset
// @Description Redeem a reset token and set a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body resetPasswordRequest true "Token and new password"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errors.APIError
// @Router /auth/reset-password [post]
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.fleetservice.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "password updated successfully"})
}
