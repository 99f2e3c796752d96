package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/service"
	"volunteerhub/internal/validation"
)

// EventTagHandler handles tag endpoints.
type EventTagHandler struct {
	tags service.EventTagService
}

// NewEventTagHandler creates a new tag handler.
func NewEventTagHandler(tags service.EventTagService) *EventTagHandler {
	return &EventTagHandler{tags: tags}
}

func tagKey(c echo.Context) validation.EventTagKey {
	return validation.EventTagKey{EventID: c.Param("eventId"), Name: c.Param("name")}
}

// GetOne godoc
// @Summary Get one tag of an event
// @Tags tags
// @Produce json
// @Param eventId path string true "Event ID"
// @Param name path string true "Tag name"
// @Success 200 {object} model.EventTag
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{eventId}/{name} [get]
func (h *EventTagHandler) GetOne(c echo.Context) error {
	tag, err := h.tags.GetOne(c.Request().Context(), tagKey(c))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, tag)
}

// GetByEvent godoc
// @Summary List the tags of an event
// @Tags tags
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {array} model.EventTag
// @Failure 400 {object} errors.ErrorResponse
// @Router /tags/{eventId} [get]
func (h *EventTagHandler) GetByEvent(c echo.Context) error {
	tags, err := h.tags.GetByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// Create godoc
// @Summary Tag an event
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.EventTagCreateInput true "Tag"
// @Success 201 {object} model.EventTag
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /tags [post]
func (h *EventTagHandler) Create(c echo.Context) error {
	var input validation.EventTagCreateInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	tag, err := h.tags.Create(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, tag)
}

// CreateMany godoc
// @Summary Tag an event with several names at once
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.EventTagCreateManyInput true "Tags"
// @Success 201 {array} model.EventTag
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /tags/batch [post]
func (h *EventTagHandler) CreateMany(c echo.Context) error {
	var input validation.EventTagCreateManyInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	tags, err := h.tags.CreateMany(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, tags)
}

// Delete godoc
// @Summary Remove a tag from an event
// @Tags tags
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Param name path string true "Tag name"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{eventId}/{name} [delete]
func (h *EventTagHandler) Delete(c echo.Context) error {
	if err := h.tags.Delete(c.Request().Context(), tagKey(c)); err != nil {
		return respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}
