package request_models

import "moments/internal/models/response_models"

// NotificationRequest wraps the activity a client wants announced.
type NotificationRequest struct {
	Activity *response_models.ActivityResponse `json:"activity" binding:"required"`
}
