package client

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"moments/internal/models/request_models"
	"moments/internal/models/response_models"
	"moments/pkg/logger"
	"moments/pkg/utils"
)

var (
	ErrInvalidActivity = errors.New("activity needs a title and a date")
	ErrNotEditing      = errors.New("no activity is being edited")
)

const FilterAll = "all"

// Confirmer asks the user before a destructive action.
type Confirmer interface {
	Confirm(activity response_models.ActivityResponse) bool
}

type ConfirmFunc func(activity response_models.ActivityResponse) bool

func (f ConfirmFunc) Confirm(activity response_models.ActivityResponse) bool { return f(activity) }

// State mirrors the server's activity list. Every mutation goes to the API
// first and the local list is patched from the server's answer.
type State struct {
	api        API
	log        *logger.Logger
	activities []response_models.ActivityResponse
	editingID  uint
	editing    bool
}

func NewState(api API, log *logger.Logger) *State {
	return &State{api: api, log: log.With("component", "client.State")}
}

// Activities returns a copy of the local list in server order.
func (s *State) Activities() []response_models.ActivityResponse {
	return append([]response_models.ActivityResponse(nil), s.activities...)
}

func (s *State) Reload(ctx context.Context) error {
	activities, err := s.api.List(ctx)
	if err != nil {
		s.log.Error("reload failed", "error", err)
		return err
	}
	s.activities = activities
	return nil
}

// Add creates the activity and prepends the server's record. Blank titles
// and missing dates never reach the server.
func (s *State) Add(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Date) == "" {
		return nil, ErrInvalidActivity
	}

	created, err := s.api.Create(ctx, req)
	if err != nil {
		s.log.Error("create failed", "title", req.Title, "error", err)
		return nil, err
	}
	s.activities = append([]response_models.ActivityResponse{*created}, s.activities...)
	return created, nil
}

func (s *State) BeginEdit(id uint) error {
	if s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %d", utils.ErrActivityNotFound, id)
	}
	s.editingID = id
	s.editing = true
	return nil
}

func (s *State) CancelEdit() {
	s.editingID = 0
	s.editing = false
}

func (s *State) Editing() (uint, bool) {
	return s.editingID, s.editing
}

// Edit replaces the activity selected by BeginEdit, keeping its position.
func (s *State) Edit(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error) {
	if !s.editing {
		return nil, ErrNotEditing
	}
	req.ID = s.editingID

	updated, err := s.api.Update(ctx, req)
	if err != nil {
		s.log.Error("update failed", "id", req.ID, "error", err)
		return nil, err
	}
	if i := s.indexOf(updated.ID); i >= 0 {
		s.activities[i] = *updated
	}
	s.CancelEdit()
	return updated, nil
}

// Delete removes the activity after confirmation. It reports false with a
// nil error when the user declined.
func (s *State) Delete(ctx context.Context, id uint, confirmer Confirmer) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %d", utils.ErrActivityNotFound, id)
	}
	if confirmer != nil && !confirmer.Confirm(s.activities[i]) {
		return false, nil
	}

	if err := s.api.Delete(ctx, id); err != nil {
		s.log.Error("delete failed", "id", id, "error", err)
		return false, fmt.Errorf("delete activity %d: %w", id, err)
	}
	if i = s.indexOf(id); i >= 0 {
		s.activities = append(s.activities[:i], s.activities[i+1:]...)
	}
	if s.editing && s.editingID == id {
		s.CancelEdit()
	}
	return true, nil
}

// Labels lists every distinct label in first-seen order.
func (s *State) Labels() []string {
	seen := make(map[string]struct{})
	labels := []string{}
	for _, a := range s.activities {
		for _, l := range a.Labels {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			labels = append(labels, l)
		}
	}
	return labels
}

// Filter projects the list onto one label; FilterAll or "" returns everything.
func (s *State) Filter(label string) []response_models.ActivityResponse {
	if label == "" || label == FilterAll {
		return s.Activities()
	}
	out := []response_models.ActivityResponse{}
	for _, a := range s.activities {
		if a.HasLabel(label) {
			out = append(out, a)
		}
	}
	return out
}

func (s *State) indexOf(id uint) int {
	for i, a := range s.activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

const (
	SortByDate   = "date"
	SortByRating = "rating"

	OrderAsc  = "asc"
	OrderDesc = "desc"
	OrderNone = "none"
)

// Sort returns a sorted copy. Ties keep their input order and undated
// activities go last when sorting by date. OrderNone keeps the input order.
func Sort(activities []response_models.ActivityResponse, key, order string) ([]response_models.ActivityResponse, error) {
	out := append([]response_models.ActivityResponse(nil), activities...)
	if order == "" || order == OrderNone {
		return out, nil
	}
	if order != OrderAsc && order != OrderDesc {
		return nil, fmt.Errorf("%w: order must be asc, desc or none", utils.ErrInvalidInput)
	}
	desc := order == OrderDesc

	var less func(a, b response_models.ActivityResponse) bool
	switch key {
	case SortByDate:
		less = func(a, b response_models.ActivityResponse) bool {
			if a.Date == "" || b.Date == "" {
				return a.Date != "" && b.Date == ""
			}
			if desc {
				return a.Date > b.Date
			}
			return a.Date < b.Date
		}
	case SortByRating:
		less = func(a, b response_models.ActivityResponse) bool {
			if desc {
				return a.AverageRating() > b.AverageRating()
			}
			return a.AverageRating() < b.AverageRating()
		}
	default:
		return nil, fmt.Errorf("%w: sort key must be date or rating", utils.ErrInvalidInput)
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}

type Partition struct {
	Future  []response_models.ActivityResponse
	Past    []response_models.ActivityResponse
	Undated []response_models.ActivityResponse
}

// PartitionByDate splits activities around today's calendar day: today and
// later is future. Dates that do not parse are treated as undated.
func PartitionByDate(activities []response_models.ActivityResponse, today time.Time) Partition {
	p := Partition{
		Future:  []response_models.ActivityResponse{},
		Past:    []response_models.ActivityResponse{},
		Undated: []response_models.ActivityResponse{},
	}
	start := utils.StartOfDay(today)
	for _, a := range activities {
		if a.Date == "" {
			p.Undated = append(p.Undated, a)
			continue
		}
		date, err := utils.ParseDate(a.Date, today.Location())
		if err != nil {
			p.Undated = append(p.Undated, a)
			continue
		}
		if date.Before(start) {
			p.Past = append(p.Past, a)
		} else {
			p.Future = append(p.Future, a)
		}
	}
	return p
}
