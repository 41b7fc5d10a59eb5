package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondJSON writes the payload as-is. The activity API returns bare records
// and arrays, so only errors go through the envelope.
func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrActivityNotFound):
		RespondError(c, http.StatusNotFound, "Activity not found")
	case errors.Is(err, ErrRoomNotFound):
		RespondError(c, http.StatusNotFound, "Room not found")
	case errors.Is(err, ErrParticipantNotFound):
		RespondError(c, http.StatusNotFound, "Participant not found")
	case errors.Is(err, ErrAddressNotFound):
		RespondError(c, http.StatusNotFound, "Address not found")
	case errors.Is(err, ErrFeatureDisabled):
		RespondError(c, http.StatusNotFound, "Feature disabled")
	case errors.Is(err, ErrRoomClosed):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrDatabaseError):
		zap.S().Errorw("database error", "error", err, "trace_id", traceID(c))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.S().Errorw("unhandled service error", "error", err, "trace_id", traceID(c))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}
