package handler

import "github.com/labstack/echo/v4"

// envelope is the uniform success body: {success:true, statusCode, data,
// message}. Failures never pass through here; they are rendered by the
// central HTTP error handler.
type envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
}

func respond(c echo.Context, statusCode int, data any, message string) error {
	return c.JSON(statusCode, envelope{
		Success:    true,
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	})
}
