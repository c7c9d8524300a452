package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error aborts the chain with the standard error envelope.
func Error(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func ErrorWithDetails(c *gin.Context, status int, code, message string, details any) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: message, Code: code, Details: details}})
}

func BadRequest(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, "bad_request", err)
}

func NotFound(c *gin.Context, err error) {
	Error(c, http.StatusNotFound, "not_found", err)
}

func Unauthorized(c *gin.Context, err error) {
	Error(c, http.StatusUnauthorized, "unauthorized", err)
}

func Internal(c *gin.Context, err error) {
	Error(c, http.StatusInternalServerError, "internal", err)
}
