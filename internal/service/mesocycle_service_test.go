package service

import (
	"context"
	"testing"

	"ironlog/meso-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMesocycleCreateAndGet(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewMesocycleService(newFakeMesocycleRepo())

	days := []domain.TrainingDay{
		{Name: "Monday", Slots: []domain.ExerciseSlot{{MuscleGroup: "Chest", Exercise: "Bench Press"}}},
		{Name: "Thursday", Slots: []domain.ExerciseSlot{{MuscleGroup: "Back", Exercise: "Row"}}},
	}

	created, err := svc.Create(ctx, userID, "Push Pull", "Upper/Lower", days)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	got, err := svc.GetByName(ctx, userID, "Push Pull")
	require.NoError(t, err)
	assert.Equal(t, "Upper/Lower", got.TemplateName)
	assert.Equal(t, days, got.Days)

	// Same name for the same user is a conflict.
	_, err = svc.Create(ctx, userID, "Push Pull", "", days)
	assert.ErrorIs(t, err, ErrMesocycleExists)

	// Another user may reuse the name.
	_, err = svc.Create(ctx, newTestUserID(), "Push Pull", "", days)
	assert.NoError(t, err)
}

func TestMesocycleValidation(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewMesocycleService(newFakeMesocycleRepo())

	testCases := []struct {
		name    string
		days    []domain.TrainingDay
		wantErr error
	}{
		{
			name: "duplicate weekday",
			days: []domain.TrainingDay{
				{Name: "Monday"},
				{Name: "Monday"},
			},
			wantErr: ErrDuplicateWeekday,
		},
		{
			name: "bad weekday label",
			days: []domain.TrainingDay{
				{Name: "Mondy"},
			},
			wantErr: ErrInvalidWeekday,
		},
		{
			name: "lowercase label rejected",
			days: []domain.TrainingDay{
				{Name: "monday"},
			},
			wantErr: ErrInvalidWeekday,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := svc.Create(ctx, userID, "Bad", "", testCase.days)
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}

	_, err := svc.Create(ctx, userID, "", "", nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestMesocycleUpdate(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewMesocycleService(newFakeMesocycleRepo())

	_, err := svc.Create(ctx, userID, "Push Pull", "", []domain.TrainingDay{{Name: "Monday"}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userID, "Push Pull", "v2", []domain.TrainingDay{{Name: "Tuesday"}})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.TemplateName)
	require.Len(t, updated.Days, 1)
	assert.Equal(t, "Tuesday", updated.Days[0].Name)

	_, err = svc.Update(ctx, userID, "Missing", "", nil)
	assert.ErrorIs(t, err, ErrMesocycleNotFound)

	_, err = svc.Update(ctx, userID, "Push Pull", "", []domain.TrainingDay{{Name: "Friday"}, {Name: "Friday"}})
	assert.ErrorIs(t, err, ErrDuplicateWeekday)
}

func TestMesocycleDelete(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewMesocycleService(newFakeMesocycleRepo())

	_, err := svc.Create(ctx, userID, "Push Pull", "", []domain.TrainingDay{{Name: "Monday"}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, "Push Pull"))
	assert.ErrorIs(t, svc.Delete(ctx, userID, "Push Pull"), ErrMesocycleNotFound)
}

func TestMesocycleList(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewMesocycleService(newFakeMesocycleRepo())

	for _, name := range []string{"Block A", "Block B"} {
		_, err := svc.Create(ctx, userID, name, "", []domain.TrainingDay{{Name: "Monday"}})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, newTestUserID(), "Other", "", []domain.TrainingDay{{Name: "Monday"}})
	require.NoError(t, err)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2, "only the user's own mesocycles")
	assert.Equal(t, "Block A", list[0].Name)
	assert.Equal(t, "Block B", list[1].Name)
}

func TestMesocycleVolume(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewMesocycleService(newFakeMesocycleRepo())

	days := []domain.TrainingDay{
		{Name: "Monday", Slots: []domain.ExerciseSlot{
			{MuscleGroup: "Chest", Exercise: "Bench Press"},
			{MuscleGroup: "Chest", Exercise: "Incline Press"},
		}},
		{Name: "Thursday", Slots: []domain.ExerciseSlot{
			{MuscleGroup: "Back", Exercise: "Row"},
		}},
	}
	_, err := svc.Create(ctx, userID, "Push Pull", "", days)
	require.NoError(t, err)

	volume, err := svc.Volume(ctx, userID, "Push Pull", map[string]int{
		"Bench Press":   4,
		"Incline Press": 3,
		"Row":           5,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Chest": 7, "Back": 5}, volume)

	_, err = svc.Volume(ctx, userID, "Missing", nil)
	assert.ErrorIs(t, err, ErrMesocycleNotFound)
}
