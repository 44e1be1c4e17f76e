package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
)

func setupScheduleService(t *testing.T) *ScheduleService {
	s := miniredis.RunT(t)
	store := docstore.NewWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
	t.Cleanup(func() { store.Close() })
	return NewScheduleService(store)
}

func TestCreateAndCompleteEvent(t *testing.T) {
	service := setupScheduleService(t)
	ctx := context.Background()

	start := time.Now().Add(time.Hour)
	event, err := service.CreateEvent(ctx, CreateEventInput{
		ProjectID: "p1",
		UserID:    "u1",
		Title:     "Deep work",
		Type:      models.EventTypeWork,
		StartTime: start,
		EndTime:   start.Add(50 * time.Minute),
	})
	require.NoError(t, err)
	assert.False(t, event.Completed)

	require.NoError(t, service.SetEventCompleted(ctx, event.ID, true))

	err = service.SetEventCompleted(ctx, "missing", true)
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	service := setupScheduleService(t)
	ctx := context.Background()

	event, err := service.CreateEvent(ctx, CreateEventInput{
		ProjectID: "p1",
		UserID:    "u1",
		Title:     "Nap",
		Type:      models.EventTypeSleep,
		StartTime: time.Now(),
		EndTime:   time.Now().Add(20 * time.Minute),
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteEvent(ctx, event.ID))
	// Deleting an absent event is not an error.
	require.NoError(t, service.DeleteEvent(ctx, event.ID))
}

func TestSubscribeToEventsScopedAndOrdered(t *testing.T) {
	service := setupScheduleService(t)
	ctx := context.Background()

	base := time.Now()
	later, err := service.CreateEvent(ctx, CreateEventInput{
		ProjectID: "p1", UserID: "u1", Title: "Lunch",
		Type: models.EventTypeMeal, StartTime: base.Add(4 * time.Hour), EndTime: base.Add(5 * time.Hour),
	})
	require.NoError(t, err)
	earlier, err := service.CreateEvent(ctx, CreateEventInput{
		ProjectID: "p1", UserID: "u1", Title: "Standup",
		Type: models.EventTypeMeeting, StartTime: base.Add(time.Hour), EndTime: base.Add(90 * time.Minute),
	})
	require.NoError(t, err)
	_, err = service.CreateEvent(ctx, CreateEventInput{
		ProjectID: "p1", UserID: "u2", Title: "Someone else's block",
		Type: models.EventTypeWork, StartTime: base, EndTime: base.Add(time.Hour),
	})
	require.NoError(t, err)

	snapshots := make(chan []models.ScheduleEvent, 8)
	unsubscribe := service.SubscribeToEvents(ctx, "p1", "u1", func(events []models.ScheduleEvent) {
		snapshots <- events
	})
	defer unsubscribe()

	initial := <-snapshots
	require.Len(t, initial, 2)
	assert.Equal(t, earlier.ID, initial[0].ID)
	assert.Equal(t, later.ID, initial[1].ID)
}

func TestWellnessSettingsDefaults(t *testing.T) {
	service := setupScheduleService(t)

	settings := service.GetWellnessSettings(context.Background(), "p1", "u1")
	assert.Equal(t, 50, settings.WorkMinutes)
	assert.Equal(t, 10, settings.BreakMinutes)
	assert.Equal(t, "02:00", settings.SleepTime)
	assert.Equal(t, "08:00", settings.WakeTime)
	assert.Equal(t, "13:00", settings.MealTime)
	assert.True(t, settings.BreakReminders)
}

func TestUpsertWellnessSettings(t *testing.T) {
	service := setupScheduleService(t)
	ctx := context.Background()

	custom := models.WellnessSettings{
		ProjectID:          "p1",
		UserID:             "u1",
		WorkMinutes:        25,
		BreakMinutes:       5,
		SleepTime:          "03:00",
		WakeTime:           "09:00",
		MealTime:           "12:30",
		BreakReminders:     false,
		HydrationReminders: true,
	}
	require.NoError(t, service.UpsertWellnessSettings(ctx, custom))

	stored := service.GetWellnessSettings(ctx, "p1", "u1")
	assert.Equal(t, custom, stored)

	// A second upsert replaces the record.
	custom.WorkMinutes = 45
	require.NoError(t, service.UpsertWellnessSettings(ctx, custom))
	stored = service.GetWellnessSettings(ctx, "p1", "u1")
	assert.Equal(t, 45, stored.WorkMinutes)
}
