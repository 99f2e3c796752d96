package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/service"
	"volunteerhub/internal/validation"
)

// MetricHandler handles contribution metric endpoints.
type MetricHandler struct {
	metrics service.MetricService
}

// NewMetricHandler creates a new metric handler.
func NewMetricHandler(metrics service.MetricService) *MetricHandler {
	return &MetricHandler{metrics: metrics}
}

// GetOne godoc
// @Summary Get a metric
// @Tags metrics
// @Produce json
// @Param id path int true "Metric ID"
// @Success 200 {object} model.Metric
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /metrics/{id} [get]
func (h *MetricHandler) GetOne(c echo.Context) error {
	metric, err := h.metrics.GetOne(c.Request().Context(), uintParam(c, "id"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, metric)
}

// GetAll godoc
// @Summary List metrics
// @Tags metrics
// @Produce json
// @Success 200 {array} model.Metric
// @Router /metrics [get]
func (h *MetricHandler) GetAll(c echo.Context) error {
	metrics, err := h.metrics.GetAll(c.Request().Context(), validation.MetricFindManyArgs{})
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, metrics)
}

// Search godoc
// @Summary Filter, order and page metrics
// @Tags metrics
// @Accept json
// @Produce json
// @Param request body validation.MetricFindManyArgs true "Query"
// @Success 200 {array} model.Metric
// @Failure 400 {object} errors.ErrorResponse
// @Router /metrics/search [post]
func (h *MetricHandler) Search(c echo.Context) error {
	var args validation.MetricFindManyArgs
	if err := bind(c, &args, auth.Public); err != nil {
		return err
	}
	metrics, err := h.metrics.GetAll(c.Request().Context(), args)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, metrics)
}

// GetByEvent godoc
// @Summary List the metrics recorded for an event
// @Tags metrics
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {array} model.Metric
// @Failure 400 {object} errors.ErrorResponse
// @Router /metrics/event/{eventId} [get]
func (h *MetricHandler) GetByEvent(c echo.Context) error {
	metrics, err := h.metrics.GetByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, metrics)
}

// Create godoc
// @Summary Record a metric
// @Tags metrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.MetricCreateInput true "Metric"
// @Success 201 {object} model.Metric
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /metrics [post]
func (h *MetricHandler) Create(c echo.Context) error {
	var input validation.MetricCreateInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	metric, err := h.metrics.Create(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, metric)
}

// CreateMany godoc
// @Summary Record several metrics at once
// @Tags metrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.MetricCreateManyInput true "Metrics"
// @Success 201 {array} model.Metric
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /metrics/batch [post]
func (h *MetricHandler) CreateMany(c echo.Context) error {
	var input validation.MetricCreateManyInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	metrics, err := h.metrics.CreateMany(c.Request().Context(), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusCreated, metrics)
}

// Update godoc
// @Summary Update a metric
// @Tags metrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Metric ID"
// @Param request body validation.MetricUpdateInput true "Changes"
// @Success 200 {object} model.Metric
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /metrics/{id} [patch]
func (h *MetricHandler) Update(c echo.Context) error {
	var input validation.MetricUpdateInput
	if err := bind(c, &input, auth.Protected); err != nil {
		return err
	}
	metric, err := h.metrics.Update(c.Request().Context(), uintParam(c, "id"), input)
	if err != nil {
		return respond(err)
	}
	return c.JSON(http.StatusOK, metric)
}

// Delete godoc
// @Summary Delete a metric
// @Tags metrics
// @Security BearerAuth
// @Param id path int true "Metric ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /metrics/{id} [delete]
func (h *MetricHandler) Delete(c echo.Context) error {
	if err := h.metrics.Delete(c.Request().Context(), uintParam(c, "id")); err != nil {
		return respond(err)
	}
	return c.NoContent(http.StatusNoContent)
}
