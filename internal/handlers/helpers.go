package handlers

import (
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"social-service/internal/apperrors"
)

func requestIDFromHeader(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return requestID
}

func userIDFromContext(c *gin.Context) *int64 {
	if userIDVal, ok := c.Get("userID"); ok {
		if userID, ok := userIDVal.(int64); ok {
			return &userID
		}
	}

	if header := c.GetHeader("X-User-ID"); header != "" {
		if parsed, err := strconv.ParseInt(header, 10, 64); err == nil {
			return &parsed
		}
	}

	return nil
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return nethttp.StatusNotFound
	case apperrors.KindInvalidArgument:
		return nethttp.StatusBadRequest
	case apperrors.KindForbidden:
		return nethttp.StatusForbidden
	case apperrors.KindConflict:
		return nethttp.StatusConflict
	case apperrors.KindRateLimited:
		return nethttp.StatusTooManyRequests
	default:
		return nethttp.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForKind(apperrors.KindOf(err)), gin.H{"error": apperrors.MessageOf(err)})
}
