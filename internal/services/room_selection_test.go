package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moments/internal/models/room_models"
)

func roomWithRatings(topCount int, ratings map[string]map[string]int) room_models.Room {
	room := room_models.Room{
		Activities: []room_models.CatalogItem{
			{ID: "1", Label: "Home cooking"},
			{ID: "2", Label: "Cinema"},
			{ID: "3", Label: "Planetarium"},
			{ID: "4", Label: "Dancing"},
		},
		TopCount:   topCount,
		Thresholds: room_models.DefaultThresholds,
		Ratings:    map[string]map[string]room_models.Rating{},
	}
	for _, userID := range []string{"a", "b"} {
		room.Participants = append(room.Participants, room_models.Participant{ID: userID})
		byActivity := map[string]room_models.Rating{}
		for activityID, v := range ratings[userID] {
			byActivity[activityID] = room_models.Rating{UserID: userID, ActivityID: activityID, Value: v}
		}
		room.Ratings[userID] = byActivity
	}
	return room
}

func TestSelectActivitiesAppliesThresholds(t *testing.T) {
	room := roomWithRatings(3, map[string]map[string]int{
		"a": {"1": 8, "2": 4, "3": 10, "4": 7},
		"b": {"1": 7, "2": 9, "3": 6, "4": 7},
	})

	picks := SelectActivities(room)

	// "2" fails minEach, "3" fails maxGap
	if assert.Len(t, picks, 2) {
		assert.Equal(t, "1", picks[0].ActivityID)
		assert.Equal(t, 15, picks[0].Sum)
		assert.Equal(t, 1, picks[0].Gap)
		assert.Equal(t, map[string]int{"a": 8, "b": 7}, picks[0].Ratings)
		assert.Equal(t, "4", picks[1].ActivityID)
		assert.Equal(t, 14, picks[1].Sum)
	}
}

func TestSelectActivitiesOrderingAndTopCount(t *testing.T) {
	room := roomWithRatings(2, map[string]map[string]int{
		"a": {"1": 6, "2": 7, "3": 8, "4": 9},
		"b": {"1": 8, "2": 7, "3": 6, "4": 9},
	})

	picks := SelectActivities(room)

	// sums: 1=14 gap2, 2=14 gap0, 3=14 gap2, 4=18
	assert.Len(t, picks, 2)
	assert.Equal(t, "4", picks[0].ActivityID)
	assert.Equal(t, "2", picks[1].ActivityID)

	room.TopCount = 4
	picks = SelectActivities(room)
	var ids []string
	for _, p := range picks {
		ids = append(ids, p.ActivityID)
	}
	assert.Equal(t, []string{"4", "2", "1", "3"}, ids)
}

func TestSelectActivitiesRequiresEveryoneToRate(t *testing.T) {
	room := roomWithRatings(3, map[string]map[string]int{
		"a": {"1": 9},
		"b": {},
	})
	assert.Empty(t, SelectActivities(room))

	room.Participants = nil
	assert.Empty(t, SelectActivities(room))
}
