package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/service"
	"volunteerhub/internal/validation"
)

// AuthHandler handles sign-in endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// AccessTokenResponse carries a refreshed access token.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// RequestSignIn godoc
// @Summary Send a sign-in link to an email address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.EmailSignInInput true "Email"
// @Success 202 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/email [post]
func (h *AuthHandler) RequestSignIn(c echo.Context) error {
	var input validation.EmailSignInInput
	if err := bind(c, &input, auth.Public); err != nil {
		return err
	}
	if err := h.authService.RequestSignIn(c.Request().Context(), input); err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusAccepted, MessageResponse{Message: "sign-in link sent"})
}

// VerifySignIn godoc
// @Summary Complete an email sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.EmailVerifyInput true "Email and token"
// @Success 200 {object} service.SignInResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/email/verify [post]
func (h *AuthHandler) VerifySignIn(c echo.Context) error {
	var input validation.EmailVerifyInput
	if err := bind(c, &input, auth.Public); err != nil {
		return err
	}
	res, err := h.authService.VerifySignIn(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Refresh godoc
// @Summary Exchange a refresh token for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.RefreshInput true "Refresh token"
// @Success 200 {object} AccessTokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var input validation.RefreshInput
	if err := bind(c, &input, auth.Public); err != nil {
		return err
	}
	token, err := h.authService.Refresh(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, AccessTokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(auth.AccessTokenExpiry.Seconds()),
	})
}

// Logout godoc
// @Summary End the session of a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.RefreshInput true "Refresh token"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var input validation.RefreshInput
	if err := bind(c, &input, auth.Public); err != nil {
		return err
	}
	claims, _ := auth.ClaimsFrom(c)
	if err := h.authService.Logout(c.Request().Context(), input, claims); err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// LinkAccount godoc
// @Summary Link an external provider account to the caller
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.AccountCreateInput true "Provider account"
// @Success 201 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/accounts [post]
func (h *AuthHandler) LinkAccount(c echo.Context) error {
	var input validation.AccountCreateInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	account, err := h.authService.LinkAccount(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, account)
}

// Accounts godoc
// @Summary List the caller's linked accounts
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/accounts [get]
func (h *AuthHandler) Accounts(c echo.Context) error {
	accounts, err := h.authService.Accounts(c.Request().Context())
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, accounts)
}
