package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"moments/internal/models/request_models"
	"moments/internal/models/response_models"
	"moments/internal/models/room_models"
	"moments/pkg/logger"
	mem "moments/pkg/memcache"
	"moments/pkg/utils"
)

type RoomServiceInterface interface {
	CreateRoom(ctx context.Context, req request_models.CreateRoomRequest) (*response_models.RoomResponse, error)
	GetRoom(ctx context.Context, roomID string) (*response_models.RoomResponse, error)
	Join(ctx context.Context, roomID string, req request_models.JoinRoomRequest) (*room_models.Participant, error)
	Leave(ctx context.Context, roomID string, req request_models.LeaveRoomRequest) (*response_models.RoomResponse, error)
	Rate(ctx context.Context, roomID string, req request_models.RateActivityRequest) (*response_models.RoomResponse, error)
	Reveal(ctx context.Context, roomID string) (*response_models.RoomResponse, error)
	Choose(ctx context.Context, roomID string, req request_models.ChooseActivityRequest) (*response_models.RoomResponse, error)
	SweepExpired() int
}

type RoomService struct {
	rooms mem.Store[room_models.Room]
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

func NewRoomService(rooms mem.Store[room_models.Room], ttl time.Duration, log *logger.Logger) RoomServiceInterface {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &RoomService{
		rooms: rooms,
		ttl:   ttl,
		log:   log.With("service", "RoomService"),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, req request_models.CreateRoomRequest) (*response_models.RoomResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog := room_models.DefaultCatalog()
	topCount, thresholds, err := resolveRoomSettings(req, len(catalog))
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	room := room_models.Room{
		ID:           s.newID(),
		CreatedAt:    now,
		Status:       room_models.StatusRating,
		Activities:   catalog,
		TopCount:     topCount,
		Thresholds:   thresholds,
		LastActive:   now,
		Participants: []room_models.Participant{},
		Ratings:      map[string]map[string]room_models.Rating{},
	}
	s.rooms.Set(room.ID, room, s.ttl)
	s.log.Info("room created", "room_id", room.ID, "top_count", topCount)

	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *RoomService) GetRoom(ctx context.Context, roomID string) (*response_models.RoomResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	room, ok := s.rooms.Peek(roomID)
	if !ok {
		return nil, utils.ErrRoomNotFound
	}
	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *RoomService) Join(ctx context.Context, roomID string, req request_models.JoinRoomRequest) (*room_models.Participant, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("%w: displayName is required", utils.ErrInvalidInput)
	}

	var joined room_models.Participant
	_, err := s.mutate(ctx, roomID, func(room *room_models.Room, now time.Time) error {
		if room.Status != room_models.StatusRating {
			return utils.ErrRoomClosed
		}
		joined = room_models.Participant{
			ID:          s.newID(),
			RoomID:      room.ID,
			DisplayName: name,
			JoinedAt:    now,
			IsOnline:    true,
			LastSeen:    now,
		}
		room.Participants = append(room.Participants, joined)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("participant joined", "room_id", roomID, "participant_id", joined.ID)
	return &joined, nil
}

// Leave removes the participant and their ratings. Only a room still
// collecting ratings can be left; after reveal the picks are final.
func (s *RoomService) Leave(ctx context.Context, roomID string, req request_models.LeaveRoomRequest) (*response_models.RoomResponse, error) {
	return s.mutate(ctx, roomID, func(room *room_models.Room, _ time.Time) error {
		if room.Status != room_models.StatusRating {
			return utils.ErrRoomClosed
		}
		idx := room.ParticipantIndex(req.ParticipantID)
		if idx < 0 {
			return utils.ErrParticipantNotFound
		}
		room.Participants = append(room.Participants[:idx], room.Participants[idx+1:]...)
		delete(room.Ratings, req.ParticipantID)
		return nil
	})
}

// Rate records or replaces one participant's rating of one catalog item.
func (s *RoomService) Rate(ctx context.Context, roomID string, req request_models.RateActivityRequest) (*response_models.RoomResponse, error) {
	if req.Value < MinRating || req.Value > MaxRating {
		return nil, fmt.Errorf("%w: value must be between %d and %d", utils.ErrInvalidInput, MinRating, MaxRating)
	}

	return s.mutate(ctx, roomID, func(room *room_models.Room, now time.Time) error {
		if room.Status != room_models.StatusRating {
			return utils.ErrRoomClosed
		}
		idx := room.ParticipantIndex(req.ParticipantID)
		if idx < 0 {
			return utils.ErrParticipantNotFound
		}
		if !room.HasActivity(req.ActivityID) {
			return fmt.Errorf("%w: unknown activity %q", utils.ErrInvalidInput, req.ActivityID)
		}

		byActivity := room.Ratings[req.ParticipantID]
		if byActivity == nil {
			byActivity = map[string]room_models.Rating{}
			room.Ratings[req.ParticipantID] = byActivity
		}
		byActivity[req.ActivityID] = room_models.Rating{
			UserID:     req.ParticipantID,
			RoomID:     room.ID,
			ActivityID: req.ActivityID,
			Value:      req.Value,
			CreatedAt:  now,
		}
		room.Participants[idx].LastSeen = now
		room.Participants[idx].IsOnline = true
		return nil
	})
}

func (s *RoomService) Reveal(ctx context.Context, roomID string) (*response_models.RoomResponse, error) {
	resp, err := s.mutate(ctx, roomID, func(room *room_models.Room, _ time.Time) error {
		if room.Status != room_models.StatusRating {
			return utils.ErrRoomClosed
		}
		room.Status = room_models.StatusRevealed
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("room revealed", "room_id", roomID, "picks", len(resp.Picks))
	return resp, nil
}

func (s *RoomService) Choose(ctx context.Context, roomID string, req request_models.ChooseActivityRequest) (*response_models.RoomResponse, error) {
	return s.mutate(ctx, roomID, func(room *room_models.Room, _ time.Time) error {
		if room.Status != room_models.StatusRevealed {
			return utils.ErrRoomClosed
		}
		if !room.HasActivity(req.ActivityID) {
			return fmt.Errorf("%w: unknown activity %q", utils.ErrInvalidInput, req.ActivityID)
		}
		room.Status = room_models.StatusChosen
		room.ChosenActivityID = req.ActivityID
		return nil
	})
}

func (s *RoomService) SweepExpired() int {
	return s.rooms.Sweep()
}

// mutate applies fn to a private copy of the room and stores the copy, so
// readers holding the previous value never see a partial change.
func (s *RoomService) mutate(ctx context.Context, roomID string, fn func(room *room_models.Room, now time.Time) error) (*response_models.RoomResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updated, err := s.rooms.Update(roomID, s.ttl, func(current room_models.Room) (room_models.Room, error) {
		next := current.Clone()
		now := s.now().UTC()
		if err := fn(&next, now); err != nil {
			return room_models.Room{}, err
		}
		next.LastActive = now
		return next, nil
	})
	if errors.Is(err, mem.ErrKeyNotFound) {
		return nil, utils.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	resp := toRoomResponse(updated)
	return &resp, nil
}

func resolveRoomSettings(req request_models.CreateRoomRequest, catalogSize int) (int, room_models.Thresholds, error) {
	topCount := room_models.DefaultTopCount
	if req.TopCount != nil {
		topCount = *req.TopCount
	}
	if topCount < 1 || topCount > catalogSize {
		return 0, room_models.Thresholds{}, fmt.Errorf("%w: topCount must be between 1 and %d", utils.ErrInvalidInput, catalogSize)
	}

	th := room_models.DefaultThresholds
	if req.Thresholds != nil {
		if v := req.Thresholds.MinEach; v != nil {
			th.MinEach = *v
		}
		if v := req.Thresholds.MinSum; v != nil {
			th.MinSum = *v
		}
		if v := req.Thresholds.MaxGap; v != nil {
			th.MaxGap = *v
		}
	}
	switch {
	case th.MinEach < MinRating || th.MinEach > MaxRating:
		return 0, th, fmt.Errorf("%w: minEach must be between %d and %d", utils.ErrInvalidInput, MinRating, MaxRating)
	case th.MinSum < 0:
		return 0, th, fmt.Errorf("%w: minSum must not be negative", utils.ErrInvalidInput)
	case th.MaxGap < 0 || th.MaxGap > MaxRating-MinRating:
		return 0, th, fmt.Errorf("%w: maxGap must be between 0 and %d", utils.ErrInvalidInput, MaxRating-MinRating)
	}
	return topCount, th, nil
}

func toRoomResponse(room room_models.Room) response_models.RoomResponse {
	resp := response_models.RoomResponse{
		ID:               room.ID,
		CreatedAt:        room.CreatedAt,
		Status:           room.Status,
		Activities:       room.Activities,
		TopCount:         room.TopCount,
		Thresholds:       room.Thresholds,
		LastActive:       room.LastActive,
		Participants:     room.Participants,
		RatedCount:       make(map[string]int, len(room.Participants)),
		ChosenActivityID: room.ChosenActivityID,
	}
	for _, p := range room.Participants {
		resp.RatedCount[p.ID] = len(room.Ratings[p.ID])
	}

	if room.Status == room_models.StatusRating {
		return resp
	}

	for _, byActivity := range room.Ratings {
		for _, rating := range byActivity {
			resp.Ratings = append(resp.Ratings, rating)
		}
	}
	sort.Slice(resp.Ratings, func(i, j int) bool {
		a, b := resp.Ratings[i], resp.Ratings[j]
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		return a.ActivityID < b.ActivityID
	})
	resp.Picks = SelectActivities(room)
	return resp
}
