package handler

import (
	"github.com/labstack/echo/v4"
)

// success renders {success:true, message, ...payload}.
func success(c echo.Context, code int, message string, payload echo.Map) error {
	body := echo.Map{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(code, body)
}

// failure renders {success:false, message, error?}. err is included as its
// message when non-nil.
func failure(c echo.Context, code int, message string, err error) error {
	body := echo.Map{"success": false, "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.JSON(code, body)
}
