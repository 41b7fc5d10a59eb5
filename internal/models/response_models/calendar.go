package response_models

type CalendarDay struct {
	Date       string             `json:"date"`
	Day        int                `json:"day"`
	Weekday    int                `json:"weekday"`
	IsToday    bool               `json:"isToday"`
	Activities []ActivityResponse `json:"activities"`
}

// CalendarView is either a month grid (LeadingBlanks empty cells before day 1,
// Sunday first) or a Sunday-to-Saturday week strip.
type CalendarView struct {
	View          string        `json:"view"`
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	MonthName     string        `json:"monthName"`
	LeadingBlanks int           `json:"leadingBlanks"`
	Days          []CalendarDay `json:"days"`
}
