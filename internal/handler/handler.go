package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/errors"
)

// respond maps a service error onto its HTTP status and error body.
func respond(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bind decodes the request body into dst. A body that does not decode is
// reported only to callers that pass the operation's gate.
func bind(c echo.Context, dst interface{}, policy auth.Policy) error {
	if err := c.Bind(dst); err != nil {
		if gateErr := auth.Authorize(c.Request().Context(), policy); gateErr != nil {
			return respond(gateErr)
		}
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	return nil
}

// uintParam reads a numeric path parameter. Malformed values come back as
// 0 so the service rejects them after its authorization check.
func uintParam(c echo.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// CountResponse reports how many records a bulk write touched.
type CountResponse struct {
	Count int64 `json:"count"`
}
