package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moments/internal/models/request_models"
	"moments/internal/models/response_models"
	"moments/internal/services"
	"moments/pkg/utils"
)

type ActivityController struct {
	activityService services.ActivityServiceInterface
}

func NewActivityController(activityService services.ActivityServiceInterface) *ActivityController {
	return &ActivityController{
		activityService: activityService,
	}
}

// ListActivities godoc
// @Summary List activities
// @Description Returns every activity, newest first
// @Tags Activities
// @Produce json
// @Success 200 {array} response_models.ActivityResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/activities [get]
func (a *ActivityController) ListActivities(c *gin.Context) {
	activities, err := a.activityService.ListActivities(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, activities)
}

// CreateActivity godoc
// @Summary Create an activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body request_models.ActivityRequest true "Activity payload"
// @Success 200 {object} response_models.ActivityResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/activities [post]
func (a *ActivityController) CreateActivity(c *gin.Context) {
	var req request_models.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	activity, err := a.activityService.CreateActivity(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, activity)
}

// UpdateActivity godoc
// @Summary Replace an activity
// @Description Replaces the whole record identified by id
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body request_models.ActivityRequest true "Activity payload with id"
// @Success 200 {object} response_models.ActivityResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/activities [put]
func (a *ActivityController) UpdateActivity(c *gin.Context) {
	var req request_models.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	activity, err := a.activityService.UpdateActivity(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, activity)
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Tags Activities
// @Produce json
// @Param id query int true "Activity ID"
// @Success 200 {object} response_models.DeleteResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/activities [delete]
func (a *ActivityController) DeleteActivity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	if err := a.activityService.DeleteActivity(c.Request.Context(), uint(id)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, response_models.DeleteResponse{Success: true})
}
