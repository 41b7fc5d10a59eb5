package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moments/internal/models/request_models"
	"moments/internal/services"
	"moments/pkg/middleware"
	"moments/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Login godoc
// @Summary Log in as one of the two partners
// @Description Authenticate a partner and return a session token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} response_models.LoginResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, resp)
}

// Me godoc
// @Summary Current session
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response_models.SessionResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/me [get]
func (a *AccountController) Me(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUnauthorized)
		return
	}
	utils.RespondJSON(c, http.StatusOK, a.accountService.Describe(*session))
}
