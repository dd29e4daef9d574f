package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

// ErrorResponse is the error body shape for every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Error maps an application error onto its status code and {message} body.
// Internal errors are logged with their cause but surface a generic message.
func Error(c *gin.Context, err error) {
	status := apperrors.Status(err)
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("request failed")
	}
	c.JSON(status, ErrorResponse{Message: apperrors.Message(err)})
}

// BindError answers a request-body or parameter binding failure.
func BindError(c *gin.Context, err error) {
	Error(c, apperrors.Validation(bindMessage(err)))
}

func bindMessage(err error) string {
	if err == nil {
		return "invalid request payload"
	}
	return err.Error()
}
