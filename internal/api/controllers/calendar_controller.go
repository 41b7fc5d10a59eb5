package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moments/internal/services"
	"moments/pkg/utils"
)

type CalendarController struct {
	calendarService services.CalendarServiceInterface
}

func NewCalendarController(calendarService services.CalendarServiceInterface) *CalendarController {
	return &CalendarController{calendarService: calendarService}
}

// GetCalendar godoc
// @Summary Month grid or week strip of activities
// @Tags Calendar
// @Produce json
// @Param view query string false "month (default) or week"
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} response_models.CalendarView
// @Failure 400 {object} utils.APIResponse
// @Router /api/calendar [get]
func (cc *CalendarController) GetCalendar(c *gin.Context) {
	view, err := cc.calendarService.View(c.Request.Context(), c.Query("view"), c.Query("date"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, view)
}
