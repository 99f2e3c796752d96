package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/service"
	"volunteerhub/internal/validation"
)

// EventHandler handles event endpoints.
type EventHandler struct {
	events service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(events service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// GetOne godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetOne(c echo.Context) error {
	event, err := h.events.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, event)
}

// GetAll godoc
// @Summary List every event, cancelled ones included
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Event
// @Failure 401 {object} errors.ErrorResponse
// @Router /events [get]
func (h *EventHandler) GetAll(c echo.Context) error {
	events, err := h.events.GetAll(c.Request().Context())
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, events)
}

// GetApproved godoc
// @Summary List approved events
// @Tags events
// @Produce json
// @Success 200 {array} model.Event
// @Router /events/approved [get]
func (h *EventHandler) GetApproved(c echo.Context) error {
	events, err := h.events.GetApproved(c.Request().Context())
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, events)
}

// GetPending godoc
// @Summary List events awaiting approval
// @Tags events
// @Produce json
// @Success 200 {array} model.Event
// @Router /events/pending [get]
func (h *EventHandler) GetPending(c echo.Context) error {
	events, err := h.events.GetPending(c.Request().Context())
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, events)
}

// GetCancelled godoc
// @Summary List cancelled events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Event
// @Failure 401 {object} errors.ErrorResponse
// @Router /events/cancelled [get]
func (h *EventHandler) GetCancelled(c echo.Context) error {
	events, err := h.events.GetCancelled(c.Request().Context())
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, events)
}

// GetByOrganiser godoc
// @Summary List approved events of an organiser
// @Tags events
// @Produce json
// @Param userId path string true "Organiser user ID"
// @Success 200 {array} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Router /events/organiser/{userId} [get]
func (h *EventHandler) GetByOrganiser(c echo.Context) error {
	events, err := h.events.GetByOrganiser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, events)
}

// Search godoc
// @Summary Filter, order and page events
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.EventFindManyArgs true "Query"
// @Success 200 {array} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /events/search [post]
func (h *EventHandler) Search(c echo.Context) error {
	var args validation.EventFindManyArgs
	if err := bind(c, &args, auth.Protected); err != nil {
		return err
	}
	events, err := h.events.FindMany(c.Request().Context(), args)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, events)
}

// Create godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.EventCreateInput true "Event"
// @Success 201 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var input validation.EventCreateInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	event, err := h.events.Create(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, event)
}

// Update godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body validation.EventUpdateInput true "Changes"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	var input validation.EventUpdateInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	event, err := h.events.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateMany godoc
// @Summary Update every event matching a filter
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.EventUpdateManyArgs true "Filter and changes"
// @Success 200 {object} CountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /events [patch]
func (h *EventHandler) UpdateMany(c echo.Context) error {
	var args validation.EventUpdateManyArgs
	if err := bind(c, &args, auth.Protected); err != nil {
		return err
	}
	n, err := h.events.UpdateMany(c.Request().Context(), args)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

// Approve godoc
// @Summary Approve a pending event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id}/approve [post]
func (h *EventHandler) Approve(c echo.Context) error {
	event, err := h.events.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, event)
}

// Cancel godoc
// @Summary Cancel an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id}/cancel [post]
func (h *EventHandler) Cancel(c echo.Context) error {
	event, err := h.events.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event with its tags and roster
// @Tags events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.events.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}
