package response_models

import (
	"time"

	"moments/internal/models/room_models"
)

type RoomPick struct {
	ActivityID string         `json:"activityId"`
	Label      string         `json:"label"`
	Sum        int            `json:"sum"`
	Gap        int            `json:"gap"`
	Ratings    map[string]int `json:"ratings"`
}

// RoomResponse hides individual rating values until the room is revealed;
// before that only per-participant progress is shown.
type RoomResponse struct {
	ID               string                    `json:"id"`
	CreatedAt        time.Time                 `json:"createdAt"`
	Status           room_models.Status        `json:"status"`
	Activities       []room_models.CatalogItem `json:"activities"`
	TopCount         int                       `json:"topCount"`
	Thresholds       room_models.Thresholds    `json:"thresholds"`
	LastActive       time.Time                 `json:"lastActive"`
	Participants     []room_models.Participant `json:"participants"`
	RatedCount       map[string]int            `json:"ratedCount"`
	Ratings          []room_models.Rating      `json:"ratings,omitempty"`
	Picks            []RoomPick                `json:"picks,omitempty"`
	ChosenActivityID string                    `json:"chosenActivityId,omitempty"`
}
