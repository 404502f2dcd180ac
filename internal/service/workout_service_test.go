package service

import (
	"context"
	"testing"

	"ironlog/meso-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutAddSetCreatesRecordAndExercise(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewWorkoutService(newFakeWorkoutRepo())

	record, err := svc.AddSet(ctx, userID, date("2025-06-09"), "Bench Press", domain.SetRegular)
	require.NoError(t, err)

	require.Contains(t, record.Exercises, "Bench Press")
	require.Len(t, record.Exercises["Bench Press"], 1)
	first := record.Exercises["Bench Press"][0]
	assert.Zero(t, first.Weight)
	assert.Zero(t, first.Reps)
	assert.False(t, first.Logged)
	assert.Equal(t, domain.SetRegular, first.Type)
	assert.Equal(t, []string{"Bench Press"}, record.ExerciseOrder)

	record, err = svc.AddSet(ctx, userID, date("2025-06-09"), "Bench Press", domain.SetDropset)
	require.NoError(t, err)
	assert.Equal(t, domain.SetDropset, record.Exercises["Bench Press"][1].Type)

	_, err = svc.AddSet(ctx, userID, date("2025-06-09"), "Bench Press", domain.SetType("cluster"))
	assert.ErrorIs(t, err, ErrInvalidSetType)
}

func TestWorkoutAddSetCopiesPreviousSet(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewWorkoutService(newFakeWorkoutRepo())

	_, err := svc.AddSet(ctx, userID, date("2025-06-09"), "Bench Press", domain.SetRegular)
	require.NoError(t, err)
	_, err = svc.UpdateSet(ctx, userID, date("2025-06-09"), "Bench Press", 0,
		domain.SetEntry{Weight: 80, Reps: 8, Logged: true, Type: domain.SetRegular})
	require.NoError(t, err)

	record, err := svc.AddSet(ctx, userID, date("2025-06-09"), "Bench Press", domain.SetRegular)
	require.NoError(t, err)

	require.Len(t, record.Exercises["Bench Press"], 2)
	second := record.Exercises["Bench Press"][1]
	assert.Equal(t, 80.0, second.Weight, "new set seeds weight from the previous set")
	assert.Equal(t, 8, second.Reps, "new set seeds reps from the previous set")
	assert.False(t, second.Logged, "the copy is a suggestion, not a logged set")
}

func TestWorkoutAddSetClearsRestDay(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	repo := newFakeWorkoutRepo()
	require.NoError(t, repo.Upsert(ctx, &domain.WorkoutRecord{
		UserID:    userID,
		Date:      date("2025-06-08"),
		IsRestDay: true,
		Exercises: map[string][]domain.SetEntry{},
	}))

	svc := NewWorkoutService(repo)
	record, err := svc.AddSet(ctx, userID, date("2025-06-08"), "Deadlift", domain.SetRegular)
	require.NoError(t, err)
	assert.False(t, record.IsRestDay)
}

func TestWorkoutUpdateSetBounds(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewWorkoutService(newFakeWorkoutRepo())

	_, err := svc.AddSet(ctx, userID, date("2025-06-09"), "Bench Press", domain.SetRegular)
	require.NoError(t, err)

	set := domain.SetEntry{Weight: 60, Reps: 10, Type: domain.SetDropset}

	_, err = svc.UpdateSet(ctx, userID, date("2025-06-09"), "Bench Press", 1, set)
	assert.ErrorIs(t, err, ErrSetIndexOutOfRange)

	_, err = svc.UpdateSet(ctx, userID, date("2025-06-09"), "Bench Press", -1, set)
	assert.ErrorIs(t, err, ErrSetIndexOutOfRange)

	_, err = svc.UpdateSet(ctx, userID, date("2025-06-09"), "Squat", 0, set)
	assert.ErrorIs(t, err, ErrExerciseNotInDay)

	record, err := svc.UpdateSet(ctx, userID, date("2025-06-09"), "Bench Press", 0, set)
	require.NoError(t, err)
	assert.Equal(t, set, record.Exercises["Bench Press"][0])
}

func TestWorkoutRemoveLastSetRemovesExercise(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewWorkoutService(newFakeWorkoutRepo())

	_, err := svc.AddSet(ctx, userID, date("2025-06-09"), "Bench Press", domain.SetRegular)
	require.NoError(t, err)
	_, err = svc.AddSet(ctx, userID, date("2025-06-09"), "Squat", domain.SetRegular)
	require.NoError(t, err)

	record, err := svc.RemoveSet(ctx, userID, date("2025-06-09"), "Bench Press", 0)
	require.NoError(t, err)

	assert.NotContains(t, record.Exercises, "Bench Press")
	assert.Equal(t, []string{"Squat"}, record.ExerciseOrder, "order stays in sync with the map")
}

func TestWorkoutRemoveExercise(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewWorkoutService(newFakeWorkoutRepo())

	for _, name := range []string{"Bench Press", "Squat", "Row"} {
		_, err := svc.AddSet(ctx, userID, date("2025-06-09"), name, domain.SetRegular)
		require.NoError(t, err)
	}

	record, err := svc.RemoveExercise(ctx, userID, date("2025-06-09"), "Squat")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bench Press", "Row"}, record.ExerciseOrder)
	assert.NotContains(t, record.Exercises, "Squat")

	_, err = svc.RemoveExercise(ctx, userID, date("2025-06-09"), "Squat")
	assert.ErrorIs(t, err, ErrExerciseNotInDay)
}

func TestWorkoutUpsertRejectsOrderMismatch(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	svc := NewWorkoutService(newFakeWorkoutRepo())

	exercises := map[string][]domain.SetEntry{
		"Bench Press": {{Weight: 80, Reps: 8}},
		"Squat":       {{Weight: 100, Reps: 5}},
	}

	testCases := []struct {
		name  string
		order []string
	}{
		{name: "missing exercise", order: []string{"Bench Press"}},
		{name: "unknown exercise", order: []string{"Bench Press", "Deadlift"}},
		{name: "duplicate entry", order: []string{"Bench Press", "Bench Press"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, userID, &domain.WorkoutRecord{
				Date:          date("2025-06-09"),
				Exercises:     exercises,
				ExerciseOrder: testCase.order,
			})
			assert.ErrorIs(t, err, ErrOrderMismatch)
		})
	}

	_, err := svc.Upsert(ctx, userID, &domain.WorkoutRecord{
		Date:          date("2025-06-09"),
		Exercises:     exercises,
		ExerciseOrder: []string{"Squat", "Bench Press"},
	})
	assert.NoError(t, err, "any permutation of the keys is valid")
}

func TestWorkoutUpdateNotesKeepsRestMarker(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	repo := newFakeWorkoutRepo()
	require.NoError(t, repo.Upsert(ctx, &domain.WorkoutRecord{
		UserID:    userID,
		Date:      date("2025-06-08"),
		IsRestDay: true,
		Exercises: map[string][]domain.SetEntry{},
	}))

	svc := NewWorkoutService(repo)
	record, err := svc.UpdateNotes(ctx, userID, date("2025-06-08"), "easy walk only")
	require.NoError(t, err)
	assert.Equal(t, "easy walk only", record.Notes)
	assert.True(t, record.IsRestDay)

	// Notes on a day with no record create one.
	record, err = svc.UpdateNotes(ctx, userID, date("2025-06-10"), "felt tired")
	require.NoError(t, err)
	assert.Equal(t, "felt tired", record.Notes)
}

func TestWorkoutLastSessionStats(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)

	sets := []domain.SetEntry{{Weight: 80, Reps: 8, Logged: true}}
	for _, day := range []string{"2025-05-01", "2025-05-15"} {
		require.NoError(t, repo.Upsert(ctx, &domain.WorkoutRecord{
			UserID:        userID,
			Date:          date(day),
			Exercises:     map[string][]domain.SetEntry{"Bench Press": sets},
			ExerciseOrder: []string{"Bench Press"},
		}))
	}
	// Same day as the query must not count: only strictly earlier sessions.
	require.NoError(t, repo.Upsert(ctx, &domain.WorkoutRecord{
		UserID:        userID,
		Date:          date("2025-06-09"),
		Exercises:     map[string][]domain.SetEntry{"Bench Press": sets},
		ExerciseOrder: []string{"Bench Press"},
	}))

	last, err := svc.LastSessionStats(ctx, userID, "Bench Press", date("2025-06-09"))
	require.NoError(t, err)
	assert.Equal(t, date("2025-05-15"), last.Date)
	assert.Equal(t, sets, last.Sets)

	_, err = svc.LastSessionStats(ctx, userID, "Squat", date("2025-06-09"))
	assert.ErrorIs(t, err, ErrNoPriorSession)
}

func TestWorkoutLastSessionStatsLookbackLimit(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)

	require.NoError(t, repo.Upsert(ctx, &domain.WorkoutRecord{
		UserID:        userID,
		Date:          date("2023-01-01"), // well past a year back
		Exercises:     map[string][]domain.SetEntry{"Bench Press": {{Weight: 70, Reps: 10}}},
		ExerciseOrder: []string{"Bench Press"},
	}))

	_, err := svc.LastSessionStats(ctx, userID, "Bench Press", date("2025-06-09"))
	assert.ErrorIs(t, err, ErrNoPriorSession)
}

func TestWorkoutGetRange(t *testing.T) {
	ctx := context.Background()
	userID := newTestUserID()
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)

	for _, day := range []string{"2025-06-01", "2025-06-05", "2025-06-10"} {
		require.NoError(t, repo.Upsert(ctx, &domain.WorkoutRecord{
			UserID:    userID,
			Date:      date(day),
			Exercises: map[string][]domain.SetEntry{},
		}))
	}

	records, err := svc.GetRange(ctx, userID, date("2025-06-01"), date("2025-06-05"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, date("2025-06-01"), records[0].Date)
	assert.Equal(t, date("2025-06-05"), records[1].Date)

	_, err = svc.GetRange(ctx, userID, date("2025-06-05"), date("2025-06-01"))
	assert.Error(t, err)
}

func TestWorkoutGetMissing(t *testing.T) {
	svc := NewWorkoutService(newFakeWorkoutRepo())
	_, err := svc.Get(context.Background(), newTestUserID(), date("2025-06-09"))
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}
