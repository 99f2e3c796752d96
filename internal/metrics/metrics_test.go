package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/events/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/api/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	okBefore := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/events/:id", "200"))
	failBefore := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/fail", "418"))

	for _, path := range []string{"/api/events/1", "/api/events/2", "/api/fail"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/events/:id", "200")))
	assert.Equal(t, failBefore+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/fail", "418")))
}

func TestMiddlewareWritesErrorOnce(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusConflict, "taken")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fail", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "taken")
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "ok"},
		{"failure", errors.New("bad link"), "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := SignInsTotal.WithLabelValues("verify", tt.result)
			before := testutil.ToFloat64(counter)
			SignIn("verify", tt.err)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}
