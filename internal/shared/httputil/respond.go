package httputil

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response body of the request layer.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a successful envelope with the operation's message.
func OK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Fail maps a domain error onto its status and writes a failure envelope.
func Fail(c echo.Context, err error) error {
	info := MapError(err)
	return c.JSON(info.Status, Envelope{Success: false, Message: info.Message})
}

// BadRequest rejects malformed or missing parameters before any use case runs.
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// Messages shared by parameter validation across handlers.
const (
	ParamsMissing = "parameters missing"
	ParamsBadType = "bad parameter type"
)
