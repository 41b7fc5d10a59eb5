package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moments/internal/models/request_models"
)

func TestDetectSchemaVersion(t *testing.T) {
	assert.Equal(t, SchemaV1, DetectSchemaVersion(request_models.ActivityRequest{Title: "x", Rating: intPtr(4)}))
	assert.Equal(t, SchemaV2, DetectSchemaVersion(request_models.ActivityRequest{Title: "x", Rating: intPtr(4), Date: "2024-01-01"}))
	assert.Equal(t, SchemaV3, DetectSchemaVersion(request_models.ActivityRequest{Title: "x", AyoubRating: intPtr(4)}))
	assert.Equal(t, SchemaV3, DetectSchemaVersion(request_models.ActivityRequest{Title: "x", Moment: "lovely"}))
}

func TestUpgradeActivityRequest(t *testing.T) {
	upgraded := UpgradeActivityRequest(request_models.ActivityRequest{Title: "x", Rating: intPtr(7)})
	assert.Nil(t, upgraded.Rating)
	assert.Equal(t, 7, *upgraded.AyoubRating)
	assert.Equal(t, 7, *upgraded.MedinaRating)
	assert.Equal(t, []string{}, upgraded.Labels)

	// explicit dual ratings win over the legacy field
	upgraded = UpgradeActivityRequest(request_models.ActivityRequest{Title: "x", Rating: intPtr(7), AyoubRating: intPtr(3)})
	assert.Equal(t, 3, *upgraded.AyoubRating)
	assert.Nil(t, upgraded.MedinaRating)
}
