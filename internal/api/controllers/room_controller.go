package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moments/internal/models/request_models"
	"moments/internal/services"
	"moments/pkg/utils"
)

type RoomController struct {
	roomService services.RoomServiceInterface
}

func NewRoomController(roomService services.RoomServiceInterface) *RoomController {
	return &RoomController{
		roomService: roomService,
	}
}

// CreateRoom godoc
// @Summary Open a rating room
// @Description Body is optional; omitted settings use the defaults
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body request_models.CreateRoomRequest false "Room settings"
// @Success 200 {object} response_models.RoomResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/rooms [post]
func (r *RoomController) CreateRoom(c *gin.Context) {
	var req request_models.CreateRoomRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	room, err := r.roomService.CreateRoom(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, room)
}

// GetRoom godoc
// @Summary Room state
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response_models.RoomResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/rooms/{id} [get]
func (r *RoomController) GetRoom(c *gin.Context) {
	room, err := r.roomService.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, room)
}

// Join godoc
// @Summary Join a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body request_models.JoinRoomRequest true "Display name"
// @Success 200 {object} room_models.Participant
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/rooms/{id}/join [post]
func (r *RoomController) Join(c *gin.Context) {
	var req request_models.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	participant, err := r.roomService.Join(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, participant)
}

// Leave godoc
// @Summary Leave a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body request_models.LeaveRoomRequest true "Participant"
// @Success 200 {object} response_models.RoomResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/rooms/{id}/leave [post]
func (r *RoomController) Leave(c *gin.Context) {
	var req request_models.LeaveRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	room, err := r.roomService.Leave(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, room)
}

// Rate godoc
// @Summary Rate one catalog activity
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body request_models.RateActivityRequest true "Rating"
// @Success 200 {object} response_models.RoomResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/rooms/{id}/ratings [post]
func (r *RoomController) Rate(c *gin.Context) {
	var req request_models.RateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	room, err := r.roomService.Rate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, room)
}

// Reveal godoc
// @Summary Reveal ratings and compute picks
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response_models.RoomResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/rooms/{id}/reveal [post]
func (r *RoomController) Reveal(c *gin.Context) {
	room, err := r.roomService.Reveal(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, room)
}

// Choose godoc
// @Summary Settle on an activity
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body request_models.ChooseActivityRequest true "Chosen activity"
// @Success 200 {object} response_models.RoomResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/rooms/{id}/choose [post]
func (r *RoomController) Choose(c *gin.Context) {
	var req request_models.ChooseActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	room, err := r.roomService.Choose(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, room)
}
