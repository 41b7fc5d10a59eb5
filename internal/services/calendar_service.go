package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moments/internal/models/response_models"
	"moments/pkg/utils"
)

const (
	CalendarMonth = "month"
	CalendarWeek  = "week"
)

type CalendarServiceInterface interface {
	View(ctx context.Context, view, date string) (*response_models.CalendarView, error)
}

type CalendarService struct {
	activities ActivityServiceInterface
	now        func() time.Time
	location   *time.Location
}

func NewCalendarService(activities ActivityServiceInterface) CalendarServiceInterface {
	return &CalendarService{activities: activities, now: time.Now, location: time.Local}
}

// View lays out the stored activities as a month grid or a week strip
// around date (today when empty).
func (s *CalendarService) View(ctx context.Context, view, date string) (*response_models.CalendarView, error) {
	today := s.now().In(s.location)
	anchor := today
	if strings.TrimSpace(date) != "" {
		parsed, err := utils.ParseDate(date, s.location)
		if err != nil {
			return nil, err
		}
		anchor = parsed
	}

	view = strings.ToLower(strings.TrimSpace(view))
	if view == "" {
		view = CalendarMonth
	}
	if view != CalendarMonth && view != CalendarWeek {
		return nil, fmt.Errorf("%w: view must be %q or %q", utils.ErrInvalidInput, CalendarMonth, CalendarWeek)
	}

	activities, err := s.activities.ListActivities(ctx)
	if err != nil {
		return nil, err
	}

	var out response_models.CalendarView
	if view == CalendarWeek {
		out = BuildWeekView(activities, anchor, today)
	} else {
		out = BuildMonthView(activities, anchor.Year(), anchor.Month(), today)
	}
	return &out, nil
}

// BuildMonthView returns one cell per day of the month. LeadingBlanks is the
// weekday of the 1st with Sunday as 0.
func BuildMonthView(activities []response_models.ActivityResponse, year int, month time.Month, today time.Time) response_models.CalendarView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	byDate := groupByDate(activities)

	days := make([]response_models.CalendarDay, 0, daysInMonth)
	for d := 0; d < daysInMonth; d++ {
		days = append(days, calendarDay(first.AddDate(0, 0, d), today, byDate))
	}

	return response_models.CalendarView{
		View:          CalendarMonth,
		Year:          year,
		Month:         int(month),
		MonthName:     month.String(),
		LeadingBlanks: int(first.Weekday()),
		Days:          days,
	}
}

// BuildWeekView returns the Sunday..Saturday week containing date.
func BuildWeekView(activities []response_models.ActivityResponse, date, today time.Time) response_models.CalendarView {
	day := utils.StartOfDay(date)
	sunday := day.AddDate(0, 0, -int(day.Weekday()))
	byDate := groupByDate(activities)

	days := make([]response_models.CalendarDay, 0, 7)
	for d := 0; d < 7; d++ {
		days = append(days, calendarDay(sunday.AddDate(0, 0, d), today, byDate))
	}

	return response_models.CalendarView{
		View:      CalendarWeek,
		Year:      sunday.Year(),
		Month:     int(sunday.Month()),
		MonthName: sunday.Month().String(),
		Days:      days,
	}
}

func calendarDay(day, today time.Time, byDate map[string][]response_models.ActivityResponse) response_models.CalendarDay {
	key := utils.FormatDate(day)
	activities := byDate[key]
	if activities == nil {
		activities = []response_models.ActivityResponse{}
	}
	return response_models.CalendarDay{
		Date:       key,
		Day:        day.Day(),
		Weekday:    int(day.Weekday()),
		IsToday:    utils.IsSameDay(day, today),
		Activities: activities,
	}
}

func groupByDate(activities []response_models.ActivityResponse) map[string][]response_models.ActivityResponse {
	out := make(map[string][]response_models.ActivityResponse)
	for _, a := range activities {
		if a.Date == "" {
			continue
		}
		out[a.Date] = append(out[a.Date], a)
	}
	return out
}
