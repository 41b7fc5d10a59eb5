package response_models

import "time"

type ActivityResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Address      string    `json:"address"`
	Labels       []string  `json:"labels"`
	Picture      string    `json:"picture"`
	AyoubRating  int       `json:"ayoubRating"`
	MedinaRating int       `json:"medinaRating"`
	Date         string    `json:"date"`
	Moment       string    `json:"moment"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AverageRating is the mean of both partners' ratings.
func (a ActivityResponse) AverageRating() float64 {
	return float64(a.AyoubRating+a.MedinaRating) / 2
}

func (a ActivityResponse) HasLabel(label string) bool {
	for _, l := range a.Labels {
		if l == label {
			return true
		}
	}
	return false
}

type DeleteResponse struct {
	Success bool `json:"success"`
}
