package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/logger"
)

// OK writes the uniform success envelope. Extra fields are merged next to
// the success flag so existing console clients keep their field names
// (data, user, message, token, ...).
func OK(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// BindError converts a JSON binding failure into an InvalidRequest error.
func BindError(err error) error {
	return apperr.Wrap(err, apperr.CodeInvalidRequest, "invalid request body")
}

// Fail translates an error into the failure envelope and aborts the request.
func Fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	} else {
		logger.Debug().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request rejected")
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"code":    apperr.CodeOf(err),
		"message": apperr.Message(err),
	})
}
