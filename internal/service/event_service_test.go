package service

import (
	"BiuBiuStar/internal/api/dto"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventService(t *testing.T) (EventService, *testRepos) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	return NewEventService(repos.event, repos.user), repos
}

func createTestEvent(t *testing.T, svc EventService, organizerID uint64, start, end time.Time, maxParticipants *int) *dto.EventDTO {
	t.Helper()
	event, err := svc.CreateEvent(context.Background(), organizerID, &dto.CreateEventDTO{
		Title:           "测试活动",
		Description:     "活动描述",
		StartDate:       start,
		EndDate:         end,
		MaxParticipants: maxParticipants,
	})
	require.NoError(t, err)
	return event
}

func TestCreateEventTimeValidation(t *testing.T) {
	svc, repos := newEventService(t)
	organizer := createTestUserWithRepos(t, repos, "pam")

	now := time.Now()
	_, err := svc.CreateEvent(context.Background(), organizer.ID, &dto.CreateEventDTO{
		Title:       "颠倒时间",
		Description: "结束早于开始",
		StartDate:   now.Add(2 * time.Hour),
		EndDate:     now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrEventTimeInvalid)
}

func TestJoinAfterStart(t *testing.T) {
	svc, repos := newEventService(t)
	ctx := context.Background()

	organizer := createTestUserWithRepos(t, repos, "quin")
	user := createTestUserWithRepos(t, repos, "rae")
	started := createTestEvent(t, svc, organizer.ID,
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour), nil)

	assert.ErrorIs(t, svc.JoinEvent(ctx, user.ID, started.ID), ErrEventStarted)
}

func TestJoinCapacity(t *testing.T) {
	svc, repos := newEventService(t)
	ctx := context.Background()

	organizer := createTestUserWithRepos(t, repos, "sam")
	first := createTestUserWithRepos(t, repos, "tess")
	second := createTestUserWithRepos(t, repos, "uma")

	one := 1
	event := createTestEvent(t, svc, organizer.ID,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), &one)

	require.NoError(t, svc.JoinEvent(ctx, first.ID, event.ID))
	assert.ErrorIs(t, svc.JoinEvent(ctx, second.ID, event.ID), ErrEventFull)

	// 重复报名与满员区分开
	assert.ErrorIs(t, svc.JoinEvent(ctx, first.ID, event.ID), ErrEventJoinExist)

	participants, err := svc.ListParticipants(ctx, event.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "tess", participants[0].Username)
	assert.Empty(t, participants[0].Email)
}

func TestLeaveEvent(t *testing.T) {
	svc, repos := newEventService(t)
	ctx := context.Background()

	organizer := createTestUserWithRepos(t, repos, "vik")
	user := createTestUserWithRepos(t, repos, "wen")
	event := createTestEvent(t, svc, organizer.ID,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), nil)

	require.NoError(t, svc.JoinEvent(ctx, user.ID, event.ID))
	require.NoError(t, svc.LeaveEvent(ctx, user.ID, event.ID))

	// 未报名时取消报名幂等
	assert.NoError(t, svc.LeaveEvent(ctx, user.ID, event.ID))

	participants, err := svc.ListParticipants(ctx, event.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestUpdateEventOrganizerOnly(t *testing.T) {
	svc, repos := newEventService(t)
	ctx := context.Background()

	organizer := createTestUserWithRepos(t, repos, "xan")
	stranger := createTestUserWithRepos(t, repos, "yuri")
	event := createTestEvent(t, svc, organizer.ID,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), nil)

	title := "改名"
	_, err := svc.UpdateEvent(ctx, stranger.ID, event.ID, &dto.UpdateEventDTO{Title: &title})
	assert.ErrorIs(t, err, ErrNotOrganizer)

	updated, err := svc.UpdateEvent(ctx, organizer.ID, event.ID, &dto.UpdateEventDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "改名", updated.Title)

	assert.ErrorIs(t, svc.DeleteEvent(ctx, stranger.ID, event.ID), ErrNotOrganizer)
	require.NoError(t, svc.DeleteEvent(ctx, organizer.ID, event.ID))

	_, err = svc.GetEvent(ctx, 0, event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUpdateEventInvalidTimeRange(t *testing.T) {
	svc, repos := newEventService(t)
	ctx := context.Background()

	organizer := createTestUserWithRepos(t, repos, "zoe")
	event := createTestEvent(t, svc, organizer.ID,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), nil)

	badEnd := time.Now().Add(30 * time.Minute)
	_, err := svc.UpdateEvent(ctx, organizer.ID, event.ID, &dto.UpdateEventDTO{EndDate: &badEnd})
	assert.ErrorIs(t, err, ErrEventTimeInvalid)
}

func TestJoinCancelledEvent(t *testing.T) {
	svc, repos := newEventService(t)
	ctx := context.Background()

	organizer := createTestUserWithRepos(t, repos, "abe")
	user := createTestUserWithRepos(t, repos, "bea")
	event := createTestEvent(t, svc, organizer.ID,
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), nil)

	cancelled := "cancelled"
	_, err := svc.UpdateEvent(ctx, organizer.ID, event.ID, &dto.UpdateEventDTO{Status: &cancelled})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.JoinEvent(ctx, user.ID, event.ID), ErrEventNotFound)
}
