package services

import "moments/internal/models/request_models"

// Activity payload shapes seen from older clients.
const (
	SchemaV1 = 1 // single rating, no date
	SchemaV2 = 2 // single rating with date
	SchemaV3 = 3 // dual ratings and moment notes
)

// DetectSchemaVersion guesses which client revision produced req.
func DetectSchemaVersion(req request_models.ActivityRequest) int {
	switch {
	case req.AyoubRating != nil || req.MedinaRating != nil || req.Moment != "":
		return SchemaV3
	case req.Date != "":
		return SchemaV2
	default:
		return SchemaV1
	}
}

// UpgradeActivityRequest maps older payloads onto the current shape. A lone
// rating becomes both partners' rating; everything else carries over as is.
// The result still has to pass validation, so v1 payloads fail on the date.
func UpgradeActivityRequest(req request_models.ActivityRequest) request_models.ActivityRequest {
	out := req
	if req.Rating != nil && req.AyoubRating == nil && req.MedinaRating == nil {
		ayoub, medina := *req.Rating, *req.Rating
		out.AyoubRating = &ayoub
		out.MedinaRating = &medina
	}
	out.Rating = nil
	if out.Labels == nil {
		out.Labels = []string{}
	}
	return out
}
