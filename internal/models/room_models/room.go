package room_models

import "time"

type Status string

const (
	StatusRating   Status = "rating"
	StatusRevealed Status = "revealed"
	StatusChosen   Status = "chosen"
)

type Thresholds struct {
	MinEach int `json:"minEach"`
	MinSum  int `json:"minSum"`
	MaxGap  int `json:"maxGap"`
}

type CatalogItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Participant struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"roomId"`
	DisplayName string    `json:"displayName"`
	JoinedAt    time.Time `json:"joinedAt"`
	IsOnline    bool      `json:"isOnline"`
	LastSeen    time.Time `json:"lastSeen"`
}

type Rating struct {
	UserID     string    `json:"userId"`
	RoomID     string    `json:"roomId"`
	ActivityID string    `json:"activityId"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Room is a rating session over a fixed activity catalog.
// Ratings are keyed by participant id, then activity id.
type Room struct {
	ID               string
	CreatedAt        time.Time
	Status           Status
	Activities       []CatalogItem
	TopCount         int
	Thresholds       Thresholds
	LastActive       time.Time
	ChosenActivityID string
	Participants     []Participant
	Ratings          map[string]map[string]Rating
}

// Clone copies the room deeply enough that mutating the copy never touches
// the original's slices or maps.
func (r Room) Clone() Room {
	out := r
	out.Activities = append([]CatalogItem(nil), r.Activities...)
	out.Participants = append([]Participant(nil), r.Participants...)
	out.Ratings = make(map[string]map[string]Rating, len(r.Ratings))
	for userID, byActivity := range r.Ratings {
		inner := make(map[string]Rating, len(byActivity))
		for activityID, rating := range byActivity {
			inner[activityID] = rating
		}
		out.Ratings[userID] = inner
	}
	return out
}

func (r Room) HasActivity(id string) bool {
	for _, item := range r.Activities {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (r Room) ParticipantIndex(id string) int {
	for i, p := range r.Participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

var DefaultThresholds = Thresholds{MinEach: 5, MinSum: 12, MaxGap: 3}

const DefaultTopCount = 3

// DefaultCatalog returns a fresh copy of the built-in activity list.
func DefaultCatalog() []CatalogItem {
	return []CatalogItem{
		{ID: "1", Label: "Home cooking"},
		{ID: "2", Label: "Cinema"},
		{ID: "3", Label: "Jardin botanique"},
		{ID: "4", Label: "Planetarium"},
		{ID: "5", Label: "Dancing"},
		{ID: "6", Label: "Running"},
		{ID: "7", Label: "Easy hike / Walk in forest"},
		{ID: "8", Label: "Intermediate hike"},
		{ID: "9", Label: "Cycling"},
		{ID: "10", Label: "Swimming"},
		{ID: "11", Label: "Apples (Apple picking / market)"},
		{ID: "12", Label: "Museum / Art gallery"},
		{ID: "13", Label: "Read in a library"},
		{ID: "14", Label: "Just sit somewhere & do nothing / Read / Picnic"},
		{ID: "15", Label: "Meditation"},
		{ID: "16", Label: "Yoga at Innocere (Yoga class / studio)"},
	}
}
