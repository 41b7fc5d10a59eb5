package request_models

// ActivityRequest is the body of POST and PUT /api/activities.
// Rating is the single-rating field of older clients; it is folded into the
// two user ratings before validation.
type ActivityRequest struct {
	ID           uint     `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Address      string   `json:"address"`
	Labels       []string `json:"labels"`
	Picture      string   `json:"picture"`
	Rating       *int     `json:"rating,omitempty"`
	AyoubRating  *int     `json:"ayoubRating,omitempty"`
	MedinaRating *int     `json:"medinaRating,omitempty"`
	Date         string   `json:"date"`
	Moment       string   `json:"moment"`
}
