package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/service"
	"volunteerhub/internal/validation"
)

// EventLocationHandler handles location endpoints.
type EventLocationHandler struct {
	locations service.EventLocationService
}

// NewEventLocationHandler creates a new location handler.
func NewEventLocationHandler(locations service.EventLocationService) *EventLocationHandler {
	return &EventLocationHandler{locations: locations}
}

// GetOne godoc
// @Summary Get a location
// @Tags locations
// @Produce json
// @Param id path int true "Location ID"
// @Success 200 {object} model.EventLocation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /locations/{id} [get]
func (h *EventLocationHandler) GetOne(c echo.Context) error {
	location, err := h.locations.GetOne(c.Request().Context(), uintParam(c, "id"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, location)
}

// GetAll godoc
// @Summary List locations
// @Tags locations
// @Produce json
// @Success 200 {array} model.EventLocation
// @Router /locations [get]
func (h *EventLocationHandler) GetAll(c echo.Context) error {
	locations, err := h.locations.GetAll(c.Request().Context(), validation.EventLocationFindManyArgs{})
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, locations)
}

// Search godoc
// @Summary Filter, order and page locations
// @Tags locations
// @Accept json
// @Produce json
// @Param request body validation.EventLocationFindManyArgs true "Query"
// @Success 200 {array} model.EventLocation
// @Failure 400 {object} errors.ErrorResponse
// @Router /locations/search [post]
func (h *EventLocationHandler) Search(c echo.Context) error {
	var args validation.EventLocationFindManyArgs
	if err := bind(c, &args, auth.Public); err != nil {
		return err
	}
	locations, err := h.locations.GetAll(c.Request().Context(), args)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, locations)
}

// Create godoc
// @Summary Create a location
// @Tags locations
// @Accept json
// @Produce json
// @Param request body validation.EventLocationCreateInput true "Location"
// @Success 201 {object} model.EventLocation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /locations [post]
func (h *EventLocationHandler) Create(c echo.Context) error {
	var input validation.EventLocationCreateInput
	if err := bind(c, &input, h.locations.CreatePolicy()); err != nil {
		return err
	}
	location, err := h.locations.Create(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, location)
}

// Update godoc
// @Summary Update a location
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Param request body validation.EventLocationUpdateInput true "Changes"
// @Success 200 {object} model.EventLocation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /locations/{id} [patch]
func (h *EventLocationHandler) Update(c echo.Context) error {
	var input validation.EventLocationUpdateInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	location, err := h.locations.Update(c.Request().Context(), uintParam(c, "id"), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, location)
}

// Delete godoc
// @Summary Delete a location without events
// @Tags locations
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /locations/{id} [delete]
func (h *EventLocationHandler) Delete(c echo.Context) error {
	if err := h.locations.Delete(c.Request().Context(), uintParam(c, "id")); err != nil {
		return respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}
