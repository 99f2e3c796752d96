package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunteerhub/internal/service"
	"volunteerhub/internal/validation"
)

// RegistrationHandler handles event roster endpoints.
type RegistrationHandler struct {
	registrations service.RegistrationService
}

// NewRegistrationHandler creates a new registration handler.
func NewRegistrationHandler(registrations service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

func registrationKey(c echo.Context) validation.EventRegistrationKey {
	return validation.EventRegistrationKey{EventID: c.Param("eventId"), Participant: c.Param("participant")}
}

// GetOne godoc
// @Summary Get one registration
// @Tags registrations
// @Produce json
// @Param eventId path string true "Event ID"
// @Param participant path string true "Participant user ID"
// @Success 200 {object} model.EventRegistration
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /registrations/{eventId}/{participant} [get]
func (h *RegistrationHandler) GetOne(c echo.Context) error {
	registration, err := h.registrations.GetOne(c.Request().Context(), registrationKey(c))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, registration)
}

// GetByEvent godoc
// @Summary Get the roster of an event
// @Tags registrations
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {array} model.EventRegistration
// @Failure 400 {object} errors.ErrorResponse
// @Router /registrations/{eventId} [get]
func (h *RegistrationHandler) GetByEvent(c echo.Context) error {
	roster, err := h.registrations.GetByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, roster)
}

// GetByParticipant godoc
// @Summary List the registrations of a participant
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param participant path string true "Participant user ID"
// @Success 200 {array} model.EventRegistration
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /registrations/participant/{participant} [get]
func (h *RegistrationHandler) GetByParticipant(c echo.Context) error {
	registrations, err := h.registrations.GetByParticipant(c.Request().Context(), c.Param("participant"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, registrations)
}

// Create godoc
// @Summary Register a participant for an event
// @Tags registrations
// @Accept json
// @Produce json
// @Param request body validation.EventRegistrationCreateInput true "Registration"
// @Success 201 {object} model.EventRegistration
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /registrations [post]
func (h *RegistrationHandler) Create(c echo.Context) error {
	var input validation.EventRegistrationCreateInput
	if err := bind(c, &input, h.registrations.CreatePolicy()); err != nil {
		return err
	}
	registration, err := h.registrations.Create(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, registration)
}

// Delete godoc
// @Summary Remove a participant from an event
// @Tags registrations
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Param participant path string true "Participant user ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /registrations/{eventId}/{participant} [delete]
func (h *RegistrationHandler) Delete(c echo.Context) error {
	if err := h.registrations.Delete(c.Request().Context(), registrationKey(c)); err != nil {
		return respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}
