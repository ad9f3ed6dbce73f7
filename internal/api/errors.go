package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/models"
)

const malformedBody = "Malformed request body"

// respondError writes the error body for err. Unclassified errors are logged
// and answered with a generic message.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	message := apperr.UnexpectedMessage
	var fields map[string]string
	var appErr *apperr.Error
	if errors.As(err, &appErr) && kind != apperr.KindUnexpected {
		message = appErr.Message
		fields = appErr.Fields
	}

	switch kind {
	case apperr.KindUnexpected:
		log.Error().Err(err).Str("request_id", requestID(c)).Msg("Unexpected error")
	case apperr.KindUnavailable:
		log.Warn().Err(err).Str("request_id", requestID(c)).Msg("Dependency unavailable")
	}

	writeError(c, status, message, fields)
}

// writeError aborts the request with the standard error body
func writeError(c *gin.Context, status int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Message:       message,
		Code:          status,
		InvalidFields: fields,
		DateTime:      time.Now().UTC(),
	})
}
