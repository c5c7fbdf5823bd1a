package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride-api/internal/domain"
	"github.com/stridehq/stride-api/internal/mocks"
)

func TestLogActivity(t *testing.T) {
	store := mocks.NewMockActivityStore()
	svc := NewActivityService(store, discardLogger())
	userID := uuid.New()

	activity, err := svc.LogActivity(
		context.Background(),
		userID,
		"run",
		10000,
		55*time.Minute,
		time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC),
		"tempo",
	)
	require.NoError(t, err)
	assert.Equal(t, userID, activity.UserID)

	listed, err := svc.ListActivities(context.Background(), userID, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, activity.ID, listed[0].ID)
}

func TestLogActivityValidation(t *testing.T) {
	svc := NewActivityService(mocks.NewMockActivityStore(), discardLogger())

	_, err := svc.LogActivity(
		context.Background(),
		uuid.New(),
		"",
		10000,
		time.Hour,
		time.Now().UTC(),
		"",
	)
	assert.ErrorIs(t, err, domain.ErrActivityTypeEmpty)
}

func TestListActivitiesPaging(t *testing.T) {
	store := mocks.NewMockActivityStore()
	svc := NewActivityService(store, discardLogger())
	userID := uuid.New()

	for day := 1; day <= 5; day++ {
		_, err := svc.LogActivity(
			context.Background(),
			userID,
			"run",
			5000,
			30*time.Minute,
			time.Date(2025, 6, day, 7, 0, 0, 0, time.UTC),
			"",
		)
		require.NoError(t, err)
	}

	page, err := svc.ListActivities(context.Background(), userID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	// Newest first
	assert.Equal(t, 5, page[0].StartedAt.Day())
	assert.Equal(t, 4, page[1].StartedAt.Day())

	rest, err := svc.ListActivities(context.Background(), userID, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}

func TestListActivitiesClampsPageSize(t *testing.T) {
	store := mocks.NewMockActivityStore()
	svc := NewActivityService(store, discardLogger())
	userID := uuid.New()

	// Defaults kick in for nonsense paging values; the call must not fail.
	_, err := svc.ListActivities(context.Background(), userID, -5, -10)
	assert.NoError(t, err)

	_, err = svc.ListActivities(context.Background(), userID, MaxActivityPageSize+1, 0)
	assert.NoError(t, err)
}
