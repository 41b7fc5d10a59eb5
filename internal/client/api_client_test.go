package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moments/internal/api/controllers"
	"moments/internal/models/request_models"
	"moments/internal/repositories"
	"moments/internal/services"
	"moments/pkg/logger"
	"moments/pkg/middleware"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := services.NewActivityService(repositories.NewMemoryActivityRepository(), nil, false, logger.NewNop())
	ctrl := controllers.NewActivityController(svc)

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.GET("/api/activities", ctrl.ListActivities)
	r.POST("/api/activities", ctrl.CreateActivity)
	r.PUT("/api/activities", ctrl.UpdateActivity)
	r.DELETE("/api/activities", ctrl.DeleteActivity)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClientAgainstServer(t *testing.T) {
	srv := newTestServer(t)
	api := NewHTTPClient(srv.URL, time.Second)
	state := NewState(api, logger.NewNop())
	ctx := context.Background()

	rating := 8
	created, err := state.Add(ctx, request_models.ActivityRequest{
		Title: "Hike", Date: "2099-01-01", AyoubRating: &rating, Labels: []string{"outdoor"},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, created.AyoubRating)
	assert.Equal(t, 5, created.MedinaRating)

	require.NoError(t, state.BeginEdit(created.ID))
	_, err = state.Edit(ctx, request_models.ActivityRequest{Title: "Sunrise hike", Date: "2099-01-01"})
	require.NoError(t, err)

	require.NoError(t, state.Reload(ctx))
	require.Len(t, state.Activities(), 1)
	assert.Equal(t, "Sunrise hike", state.Activities()[0].Title)

	deleted, err := state.Delete(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.True(t, deleted)

	err = api.Delete(ctx, created.ID)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Activity not found", apiErr.Message)
	assert.NotEmpty(t, apiErr.TraceID)
}
