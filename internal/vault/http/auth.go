package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/credvault/internal/vault/service"
	"github.com/aussiebroadwan/credvault/pkg/httpx"
	"github.com/aussiebroadwan/credvault/pkg/slogx"
	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
)

// AuthHandler handles operator login, logout and login 2FA.
type AuthHandler struct {
	AuthService   *service.AuthService
	MFAService    *service.MFAService
	SecureCookies bool
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in
//	@Description	Checks username and password, and the TOTP code when the operator has 2FA enabled. On success the session cookie is set.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	vaultsdk.LoginResponse	"Logged in"
//	@Failure		400		{object}	vaultsdk.APIError		"Malformed body"
//	@Failure		401		{object}	vaultsdk.APIError		"Invalid credentials, or 2FA code required (require2FA set)"
//	@Failure		500		{object}	vaultsdk.APIError		"Internal server error"
//	@Router			/v1/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req vaultsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		vaultsdk.ValidationError(errs).WriteError(w)
		return
	}

	sess, err := h.AuthService.Login(r.Context(), req.Username, req.Password, req.TwoFactorCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			vaultsdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrTOTPRequired):
			vaultsdk.ErrTOTPRequired.WriteError(w)
		case errors.Is(err, service.ErrInvalidTOTPCode):
			vaultsdk.ErrInvalidTOTPCode.WriteError(w)
		default:
			slogx.FromContext(r.Context()).Error("login failed", "err", err)
			vaultsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.SetSessionCookies(w, sess.Token, sess.ExpiresAt, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.LoginResponse{
		Success:   true,
		Redirect:  "/",
		ExpiresAt: sess.ExpiresAt,
	})
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary	Log out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	vaultsdk.SuccessResponse
//	@Router		/v1/auth/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.ClearSessionCookies(w, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.SuccessResponse{Success: true})
}

// HandleSetup handles POST /v1/auth/2fa/setup
//
//	@Summary		Start login 2FA enrolment
//	@Description	Generates a new TOTP secret for the logged in operator. 2FA is not enforced until the secret is confirmed with /v1/auth/2fa/verify.
//	@Tags			Auth
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	vaultsdk.TOTPSetupResponse	"Secret, otpauth URL and QR code"
//	@Failure		401	{object}	vaultsdk.APIError			"Not logged in"
//	@Failure		409	{object}	vaultsdk.APIError			"2FA already enabled"
//	@Router			/v1/auth/2fa/setup [post]
func (h *AuthHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	enrol, err := h.MFAService.Setup(r.Context(), userID)
	if err != nil {
		h.writeMFAError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, vaultsdk.TOTPSetupResponse{
		Secret:     enrol.Secret,
		OTPAuthURL: enrol.OTPAuthURL,
		QRCodeURL:  enrol.QRCode,
	})
}

// HandleVerify handles POST /v1/auth/2fa/verify
//
//	@Summary	Confirm login 2FA enrolment
//	@Tags		Auth
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		request	body		vaultsdk.TOTPCodeRequest	true	"Current code"
//	@Success	200		{object}	vaultsdk.SuccessResponse
//	@Failure	400		{object}	vaultsdk.APIError	"Invalid setup or invalid token"
//	@Failure	401		{object}	vaultsdk.APIError	"Not logged in"
//	@Router		/v1/auth/2fa/verify [post]
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req vaultsdk.TOTPCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.MFAService.Verify(r.Context(), httpx.UserIDFromContext(r.Context()), req.Token); err != nil {
		h.writeMFAError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.SuccessResponse{Success: true})
}

// HandleDisable handles POST /v1/auth/2fa/disable
//
//	@Summary	Turn off login 2FA
//	@Tags		Auth
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		request	body		vaultsdk.TOTPCodeRequest	true	"Current code"
//	@Success	200		{object}	vaultsdk.SuccessResponse
//	@Failure	400		{object}	vaultsdk.APIError	"2FA not enabled or invalid token"
//	@Failure	401		{object}	vaultsdk.APIError	"Not logged in"
//	@Router		/v1/auth/2fa/disable [post]
func (h *AuthHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	var req vaultsdk.TOTPCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.MFAService.Disable(r.Context(), httpx.UserIDFromContext(r.Context()), req.Token); err != nil {
		h.writeMFAError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.SuccessResponse{Success: true})
}

func (h *AuthHandler) writeMFAError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		httpx.ClearSessionCookies(w, h.SecureCookies)
		vaultsdk.ErrUnauthorized.WriteError(w)
	case errors.Is(err, service.ErrMFAAlreadyEnabled):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrMFANotEnrolled):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid setup")
	case errors.Is(err, service.ErrMFANotEnabled):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidTOTPCode):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid token")
	default:
		slogx.FromContext(r.Context()).Error("2FA request failed", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
	}
}
