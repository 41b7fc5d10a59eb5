package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moments/internal/models/response_models"
	"moments/internal/services"
	"moments/pkg/logger"
	"moments/pkg/middleware"
	"moments/pkg/utils"
)

func TestLoginAndMe(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	svc, err := services.NewAccountService(map[utils.Partner]string{utils.PartnerMedina: "tea"}, issuer, logger.NewNop())
	require.NoError(t, err)
	ctrl := NewAccountController(svc)

	r := newEngine()
	r.Use(middleware.SessionMiddleware(issuer, false))
	r.POST("/api/login", ctrl.Login)
	r.GET("/api/me", middleware.RequireSession(), ctrl.Me)

	rr := doJSON(t, r, http.MethodPost, "/api/login", map[string]string{"user": "medina", "password": "coffee"})
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(t, r, http.MethodPost, "/api/login", map[string]string{"user": "medina"})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, r, http.MethodPost, "/api/login", map[string]string{"user": "medina", "password": "tea"})
	require.Equal(t, http.StatusOK, rr.Code)
	login := decode[response_models.LoginResponse](t, rr)
	assert.Equal(t, "medina", login.User)

	rr = doJSON(t, r, http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(t, r, http.MethodGet, "/api/me", nil, "Authorization", "Bearer "+login.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Medina", decode[response_models.SessionResponse](t, rr).Name)
}
