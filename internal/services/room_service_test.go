package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moments/internal/models/request_models"
	"moments/internal/models/room_models"
	"moments/pkg/logger"
	mem "moments/pkg/memcache"
	"moments/pkg/utils"
)

func newRoomService(t *testing.T) (RoomServiceInterface, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := mem.NewTTLStore[room_models.Room]().WithClock(clock)

	svc := NewRoomService(store, time.Hour, logger.NewNop()).(*RoomService)
	svc.now = clock
	return svc, &now
}

func TestRoomLifecycle(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, request_models.CreateRoomRequest{})
	require.NoError(t, err)
	assert.Equal(t, room_models.StatusRating, room.Status)
	assert.Len(t, room.Activities, 16)
	assert.Equal(t, room_models.DefaultTopCount, room.TopCount)
	assert.Equal(t, room_models.DefaultThresholds, room.Thresholds)

	ayoub, err := svc.Join(ctx, room.ID, request_models.JoinRoomRequest{DisplayName: "Ayoub"})
	require.NoError(t, err)
	medina, err := svc.Join(ctx, room.ID, request_models.JoinRoomRequest{DisplayName: "Medina"})
	require.NoError(t, err)

	rate := func(p, activity string, v int) {
		_, err := svc.Rate(ctx, room.ID, request_models.RateActivityRequest{ParticipantID: p, ActivityID: activity, Value: v})
		require.NoError(t, err)
	}
	rate(ayoub.ID, "2", 9)
	rate(medina.ID, "2", 8)
	rate(ayoub.ID, "5", 6)
	rate(medina.ID, "5", 6)
	rate(ayoub.ID, "5", 7) // re-rating replaces

	current, err := svc.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, current.RatedCount[ayoub.ID])
	assert.Empty(t, current.Ratings, "ratings stay hidden until reveal")
	assert.Empty(t, current.Picks)

	revealed, err := svc.Reveal(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room_models.StatusRevealed, revealed.Status)
	assert.Len(t, revealed.Ratings, 4)
	require.Len(t, revealed.Picks, 2)
	assert.Equal(t, "2", revealed.Picks[0].ActivityID)
	assert.Equal(t, "5", revealed.Picks[1].ActivityID)
	assert.Equal(t, 13, revealed.Picks[1].Sum)

	_, err = svc.Rate(ctx, room.ID, request_models.RateActivityRequest{ParticipantID: ayoub.ID, ActivityID: "1", Value: 5})
	require.ErrorIs(t, err, utils.ErrRoomClosed)

	chosen, err := svc.Choose(ctx, room.ID, request_models.ChooseActivityRequest{ActivityID: "2"})
	require.NoError(t, err)
	assert.Equal(t, room_models.StatusChosen, chosen.Status)
	assert.Equal(t, "2", chosen.ChosenActivityID)

	_, err = svc.Reveal(ctx, room.ID)
	require.ErrorIs(t, err, utils.ErrRoomClosed)
}

func TestRoomRejectsBadInput(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()

	_, err := svc.CreateRoom(ctx, request_models.CreateRoomRequest{TopCount: intPtr(0)})
	require.ErrorIs(t, err, utils.ErrInvalidInput)
	_, err = svc.CreateRoom(ctx, request_models.CreateRoomRequest{Thresholds: &request_models.ThresholdsRequest{MaxGap: intPtr(12)}})
	require.ErrorIs(t, err, utils.ErrInvalidInput)

	room, err := svc.CreateRoom(ctx, request_models.CreateRoomRequest{TopCount: intPtr(1)})
	require.NoError(t, err)

	_, err = svc.Rate(ctx, room.ID, request_models.RateActivityRequest{ParticipantID: "ghost", ActivityID: "1", Value: 5})
	require.ErrorIs(t, err, utils.ErrParticipantNotFound)

	p, err := svc.Join(ctx, room.ID, request_models.JoinRoomRequest{DisplayName: "Ayoub"})
	require.NoError(t, err)
	_, err = svc.Rate(ctx, room.ID, request_models.RateActivityRequest{ParticipantID: p.ID, ActivityID: "99", Value: 5})
	require.ErrorIs(t, err, utils.ErrInvalidInput)
	_, err = svc.Rate(ctx, room.ID, request_models.RateActivityRequest{ParticipantID: p.ID, ActivityID: "1", Value: 11})
	require.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.Choose(ctx, room.ID, request_models.ChooseActivityRequest{ActivityID: "1"})
	require.ErrorIs(t, err, utils.ErrRoomClosed)

	_, err = svc.GetRoom(ctx, "missing")
	require.ErrorIs(t, err, utils.ErrRoomNotFound)
	_, err = svc.Join(ctx, "missing", request_models.JoinRoomRequest{DisplayName: "x"})
	require.ErrorIs(t, err, utils.ErrRoomNotFound)
}

func TestLeaveDropsRatingsWhileRating(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, request_models.CreateRoomRequest{})
	require.NoError(t, err)
	p, err := svc.Join(ctx, room.ID, request_models.JoinRoomRequest{DisplayName: "Ayoub"})
	require.NoError(t, err)
	_, err = svc.Rate(ctx, room.ID, request_models.RateActivityRequest{ParticipantID: p.ID, ActivityID: "1", Value: 9})
	require.NoError(t, err)

	left, err := svc.Leave(ctx, room.ID, request_models.LeaveRoomRequest{ParticipantID: p.ID})
	require.NoError(t, err)
	assert.Empty(t, left.Participants)
	assert.Empty(t, left.RatedCount)

	_, err = svc.Leave(ctx, room.ID, request_models.LeaveRoomRequest{ParticipantID: p.ID})
	require.ErrorIs(t, err, utils.ErrParticipantNotFound)
}

func TestLeaveAfterRevealKeepsPicks(t *testing.T) {
	svc, _ := newRoomService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, request_models.CreateRoomRequest{})
	require.NoError(t, err)

	var ids []string
	for i, v := range []int{8, 8, 2} {
		p, err := svc.Join(ctx, room.ID, request_models.JoinRoomRequest{DisplayName: fmt.Sprintf("p%d", i)})
		require.NoError(t, err)
		ids = append(ids, p.ID)
		_, err = svc.Rate(ctx, room.ID, request_models.RateActivityRequest{ParticipantID: p.ID, ActivityID: "1", Value: v})
		require.NoError(t, err)
	}

	revealed, err := svc.Reveal(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, revealed.Picks)

	_, err = svc.Leave(ctx, room.ID, request_models.LeaveRoomRequest{ParticipantID: ids[2]})
	require.ErrorIs(t, err, utils.ErrRoomClosed)

	current, err := svc.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room_models.StatusRevealed, current.Status)
	assert.Len(t, current.Participants, 3)
	assert.Empty(t, current.Picks)
}

func TestRoomsExpireAfterInactivity(t *testing.T) {
	svc, now := newRoomService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, request_models.CreateRoomRequest{})
	require.NoError(t, err)

	*now = now.Add(2 * time.Hour)
	_, err = svc.GetRoom(ctx, room.ID)
	require.ErrorIs(t, err, utils.ErrRoomNotFound)
	assert.Equal(t, 1, svc.SweepExpired())
}
