package service

import (
	"testing"
	"time"

	"ironlog/meso-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestCalculateDayAndWeek(t *testing.T) {
	t.Parallel()

	start := date("2025-06-02") // a Monday

	cases := []struct {
		name     string
		viewed   time.Time
		duration int
		wantWeek int
		wantDay  int
	}{
		{name: "start date is week 1 day 1", viewed: start, duration: 4, wantWeek: 1, wantDay: 1},
		{name: "second day", viewed: start.AddDate(0, 0, 1), duration: 4, wantWeek: 1, wantDay: 2},
		{name: "last day of first week", viewed: start.AddDate(0, 0, 6), duration: 4, wantWeek: 1, wantDay: 7},
		{name: "one week in is week 2 day 1", viewed: start.AddDate(0, 0, 7), duration: 4, wantWeek: 2, wantDay: 1},
		{name: "day before start is out", viewed: start.AddDate(0, 0, -1), duration: 4, wantWeek: 0, wantDay: 0},
		{name: "far before start is out", viewed: start.AddDate(0, 0, -100), duration: 4, wantWeek: 0, wantDay: 0},
		{name: "last grace day still in", viewed: start.AddDate(0, 0, 4*7+6), duration: 4, wantWeek: 5, wantDay: 7},
		{name: "past grace week is out", viewed: start.AddDate(0, 0, 4*7+8), duration: 4, wantWeek: 0, wantDay: 0},
		{name: "one week program past end", viewed: start.AddDate(0, 0, 1*7+8), duration: 1, wantWeek: 0, wantDay: 0},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			week, day := CalculateDayAndWeek(testCase.viewed, start, testCase.duration)
			assert.Equal(t, testCase.wantWeek, week, "week")
			assert.Equal(t, testCase.wantDay, day, "day")
		})
	}
}

func TestCalculateDayAndWeekNormalizesToUTCMidnight(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	// Late evening on the same UTC calendar day must not shift the result.
	viewed := time.Date(2025, 6, 9, 23, 45, 11, 0, time.UTC)

	week, day := CalculateDayAndWeek(viewed, start, 4)
	assert.Equal(t, 2, week)
	assert.Equal(t, 1, day)
}

func benchMesocycle() *domain.Mesocycle {
	return &domain.Mesocycle{
		Name: "Push Pull",
		Days: []domain.TrainingDay{
			{
				Name: "Monday",
				Slots: []domain.ExerciseSlot{
					{MuscleGroup: "Chest", Exercise: "Bench Press"},
				},
			},
		},
	}
}

func TestExpandMesocycleMondayOnlyFromWednesday(t *testing.T) {
	t.Parallel()

	start := date("2025-06-04") // a Wednesday
	mesocycle := benchMesocycle()

	plans, err := ExpandMesocycle(mesocycle, start, 1, map[string]int{"Bench Press": 4})
	require.NoError(t, err)

	// Effective start is the following Monday, five days later; the range
	// runs from the requested Wednesday through that Monday plus six days.
	require.Len(t, plans, 5+7)

	monday := date("2025-06-09")
	var trainingCount int
	for _, plan := range plans {
		if plan.Date.Equal(monday) {
			trainingCount++
			require.False(t, plan.Rest)
			require.Len(t, plan.Exercises, 1)
			assert.Equal(t, "Bench Press", plan.Exercises[0].Name)
			require.Len(t, plan.Exercises[0].Sets, 4)
			for _, set := range plan.Exercises[0].Sets {
				assert.Equal(t, domain.SetEntry{Weight: 0, Reps: 0, Logged: false, Type: domain.SetRegular}, set)
			}
			continue
		}
		assert.True(t, plan.Rest, "expected rest day on %s", plan.Date.Format("2006-01-02"))
	}
	assert.Equal(t, 1, trainingCount)

	assert.True(t, plans[0].Date.Equal(start))
	assert.True(t, plans[len(plans)-1].Date.Equal(monday.AddDate(0, 0, 6)))
}

func TestExpandMesocycleNoTrainingDays(t *testing.T) {
	t.Parallel()

	mesocycle := &domain.Mesocycle{Name: "Empty"}
	plans, err := ExpandMesocycle(mesocycle, date("2025-06-04"), 4, nil)
	require.ErrorIs(t, err, ErrNoTrainingDays)
	assert.Nil(t, plans)
}

func TestExpandMesocycleDefaultsToThreeSets(t *testing.T) {
	t.Parallel()

	mesocycle := benchMesocycle()
	plans, err := ExpandMesocycle(mesocycle, date("2025-06-09"), 1, nil) // starting on the Monday itself
	require.NoError(t, err)
	require.Len(t, plans, 7)

	require.False(t, plans[0].Rest)
	require.Len(t, plans[0].Exercises, 1)
	assert.Len(t, plans[0].Exercises[0].Sets, 3)
}

func TestExpandMesocycleSkipsUnboundSlots(t *testing.T) {
	t.Parallel()

	mesocycle := &domain.Mesocycle{
		Name: "Partial",
		Days: []domain.TrainingDay{
			{
				Name: "Friday",
				Slots: []domain.ExerciseSlot{
					{MuscleGroup: "Back", Exercise: "Deadlift"},
					{MuscleGroup: "Hamstrings"}, // still unbound
					{MuscleGroup: "Back", Exercise: "Barbell Row"},
				},
			},
		},
	}

	plans, err := ExpandMesocycle(mesocycle, date("2025-06-06"), 1, nil) // a Friday
	require.NoError(t, err)
	require.NotEmpty(t, plans)
	require.False(t, plans[0].Rest)
	require.Len(t, plans[0].Exercises, 2)
	assert.Equal(t, "Deadlift", plans[0].Exercises[0].Name)
	assert.Equal(t, "Barbell Row", plans[0].Exercises[1].Name)
}

func TestExpandMesocycleDeterministic(t *testing.T) {
	t.Parallel()

	mesocycle := &domain.Mesocycle{
		Name: "Full Body",
		Days: []domain.TrainingDay{
			{Name: "Monday", Slots: []domain.ExerciseSlot{{MuscleGroup: "Chest", Exercise: "Bench Press"}}},
			{Name: "Thursday", Slots: []domain.ExerciseSlot{{MuscleGroup: "Quads", Exercise: "Squat"}}},
		},
	}
	sets := map[string]int{"Bench Press": 4, "Squat": 5}

	first, err := ExpandMesocycle(mesocycle, date("2025-06-04"), 2, sets)
	require.NoError(t, err)
	second, err := ExpandMesocycle(mesocycle, date("2025-06-04"), 2, sets)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEffectiveStartDate(t *testing.T) {
	t.Parallel()

	mesocycle := benchMesocycle()

	effective, err := EffectiveStartDate(mesocycle, date("2025-06-04")) // Wednesday
	require.NoError(t, err)
	assert.True(t, effective.Equal(date("2025-06-09")), "got %s", effective)

	effective, err = EffectiveStartDate(mesocycle, date("2025-06-09")) // the Monday itself
	require.NoError(t, err)
	assert.True(t, effective.Equal(date("2025-06-09")))

	_, err = EffectiveStartDate(&domain.Mesocycle{}, date("2025-06-04"))
	require.ErrorIs(t, err, ErrNoTrainingDays)
}

func TestSetsPerMuscleGroup(t *testing.T) {
	t.Parallel()

	mesocycle := &domain.Mesocycle{
		Days: []domain.TrainingDay{
			{Name: "Monday", Slots: []domain.ExerciseSlot{
				{MuscleGroup: "Chest", Exercise: "Bench Press"},
				{MuscleGroup: "Chest", Exercise: "Incline Press"},
				{MuscleGroup: "Triceps", Exercise: "Pushdown"},
			}},
			{Name: "Thursday", Slots: []domain.ExerciseSlot{
				{MuscleGroup: "Chest", Exercise: "Bench Press"},
				{MuscleGroup: "Shoulders"}, // unbound, never counted
				{MuscleGroup: "Back", Exercise: "Unconfigured Row"},
			}},
		},
	}
	sets := map[string]int{"Bench Press": 4, "Incline Press": 3, "Pushdown": 2}

	volume := SetsPerMuscleGroup(mesocycle, sets)
	// Unconfigured Row has no sets entry, so Back never appears.
	assert.Equal(t, map[string]int{"Chest": 11, "Triceps": 2}, volume)
}

func TestSetsPerMuscleGroupOrderIndependent(t *testing.T) {
	t.Parallel()

	forward := &domain.Mesocycle{Days: []domain.TrainingDay{
		{Name: "Monday", Slots: []domain.ExerciseSlot{
			{MuscleGroup: "Chest", Exercise: "Bench Press"},
			{MuscleGroup: "Back", Exercise: "Row"},
		}},
		{Name: "Friday", Slots: []domain.ExerciseSlot{
			{MuscleGroup: "Chest", Exercise: "Dip"},
		}},
	}}
	permuted := &domain.Mesocycle{Days: []domain.TrainingDay{
		{Name: "Friday", Slots: []domain.ExerciseSlot{
			{MuscleGroup: "Chest", Exercise: "Dip"},
		}},
		{Name: "Monday", Slots: []domain.ExerciseSlot{
			{MuscleGroup: "Back", Exercise: "Row"},
			{MuscleGroup: "Chest", Exercise: "Bench Press"},
		}},
	}}
	sets := map[string]int{"Bench Press": 4, "Row": 3, "Dip": 2}

	assert.Equal(t, SetsPerMuscleGroup(forward, sets), SetsPerMuscleGroup(permuted, sets))
}
