package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moments/internal/models/request_models"
	"moments/internal/models/response_models"
	"moments/internal/services"
	"moments/pkg/metrics"
	"moments/pkg/utils"
)

// NotificationController sends one-off announcements on request. Both
// endpoints answer with a boolean outcome instead of failing hard.
type NotificationController struct {
	mailService services.MailServiceInterface
	smsService  services.SMSServiceInterface
}

func NewNotificationController(mailService services.MailServiceInterface, smsService services.SMSServiceInterface) *NotificationController {
	return &NotificationController{
		mailService: mailService,
		smsService:  smsService,
	}
}

// SendEmail godoc
// @Summary Email both partners about an activity
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body request_models.NotificationRequest true "Activity to announce"
// @Success 200 {object} response_models.EmailNotificationResponse
// @Failure 500 {object} response_models.EmailNotificationResponse
// @Router /api/send-notification [post]
func (n *NotificationController) SendEmail(c *gin.Context) {
	var req request_models.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := n.mailService.SendActivityMail(c.Request.Context(), *req.Activity)
	switch {
	case err == nil:
		metrics.RecordNotification(services.ChannelEmail, metrics.ResultSuccess)
		utils.RespondJSON(c, http.StatusOK, response_models.EmailNotificationResponse{Success: true})
	case errors.Is(err, utils.ErrChannelDisabled):
		metrics.RecordNotification(services.ChannelEmail, metrics.ResultDisabled)
		utils.RespondJSON(c, http.StatusOK, response_models.EmailNotificationResponse{Error: "Email credentials missing"})
	default:
		metrics.RecordNotification(services.ChannelEmail, metrics.ResultFailure)
		zap.S().Errorw("email send failed", "error", err, "trace_id", c.GetString("trace_id"))
		utils.RespondJSON(c, http.StatusInternalServerError, response_models.EmailNotificationResponse{Error: "Failed to send email"})
	}
}

// SendSMS godoc
// @Summary Text both partners about an activity
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body request_models.NotificationRequest true "Activity to announce"
// @Success 200 {object} response_models.SMSNotificationResponse
// @Router /api/send-whatsapp [post]
func (n *NotificationController) SendSMS(c *gin.Context) {
	var req request_models.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	res, err := n.smsService.SendActivitySMS(c.Request.Context(), *req.Activity)
	switch {
	case err == nil:
		metrics.RecordNotification(services.ChannelSMS, metrics.ResultSuccess)
		utils.RespondJSON(c, http.StatusOK, response_models.SMSNotificationResponse{
			Success:    true,
			Message:    fmt.Sprintf("SMS sent to %d recipients", res.Recipients),
			MessageIDs: res.MessageIDs,
		})
	case errors.Is(err, utils.ErrChannelDisabled):
		metrics.RecordNotification(services.ChannelSMS, metrics.ResultDisabled)
		utils.RespondJSON(c, http.StatusOK, response_models.SMSNotificationResponse{Message: "SMS credentials missing"})
	default:
		metrics.RecordNotification(services.ChannelSMS, metrics.ResultFailure)
		zap.S().Errorw("sms send failed", "error", err, "trace_id", c.GetString("trace_id"))
		utils.RespondJSON(c, http.StatusOK, response_models.SMSNotificationResponse{Message: "SMS API error"})
	}
}
