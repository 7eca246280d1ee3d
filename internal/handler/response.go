// Package handler implements the HTTP layer. Every response uses the
// same envelope: {"success": bool, "message"?: string, "data"?: object}.
package handler

import (
	"github.com/labstack/echo/v4"
)

// ok writes a successful envelope with a data payload.
func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// okMsg writes a successful envelope carrying a user-facing message next
// to the payload. data may be nil.
func okMsg(c echo.Context, status int, message string, data interface{}) error {
	body := echo.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(status, body)
}

// fail writes a failed envelope with a user-facing message.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}
