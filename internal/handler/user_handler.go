package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/service"
	"volunteerhub/internal/validation"
)

// UserHandler handles registration and profile endpoints.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ExistsResponse answers an email lookup.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// Exists godoc
// @Summary Check whether an email is registered
// @Tags users
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} ExistsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/exists [get]
func (h *UserHandler) Exists(c echo.Context) error {
	ok, err := h.users.Exists(c.Request().Context(), validation.UserExistsInput{Email: c.QueryParam("email")})
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, ExistsResponse{Exists: ok})
}

// Create godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body validation.UserCreateInput true "User"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var input validation.UserCreateInput
	if err := bind(c, &input, auth.Public); err != nil {
		return err
	}
	user, err := h.users.Create(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Me godoc
// @Summary Get the calling user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.users.Me(c.Request().Context())
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Update godoc
// @Summary Update the calling user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.UserUpdateInput true "Changes"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var input validation.UserUpdateInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	user, err := h.users.Update(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Delete the calling user
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/me [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context()); err != nil {
		return respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}
