package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root answers the unauthenticated banner endpoint at "/".  Load balancers
// and uptime monitors use it to verify that the service is running.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "marketplace server is running")
}
