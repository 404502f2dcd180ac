package service

import (
	"errors"
	"time"

	"ironlog/meso-tracker/internal/domain"
)

// --- Error Definitions ---
var (
	ErrNoTrainingDays = errors.New("no training days configured for this program")
)

// DefaultSetsPerExercise is used when the caller did not configure a set
// count for an exercise.
const DefaultSetsPerExercise = 3

// PlannedExercise is one exercise of a projected day with its initial
// pending sets.
type PlannedExercise struct {
	Name string
	Sets []domain.SetEntry
}

// DayPlan is the projection of the weekly template onto one calendar
// date: either an explicit rest day or an ordered list of exercises.
type DayPlan struct {
	Date      time.Time
	Rest      bool
	Exercises []PlannedExercise
}

// DayUTC truncates a moment to its calendar day at UTC midnight. All
// projection arithmetic runs on these normalized dates; UTC has no DST,
// so two of them always differ by an exact multiple of 24h.
func DayUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WeekdayLabel returns the training-day label ("Sunday".."Saturday") for
// a date.
func WeekdayLabel(t time.Time) string {
	return domain.WeekdayLabels[int(t.UTC().Weekday())]
}

// CalculateDayAndWeek maps a viewed date to its 1-indexed (week, day)
// position inside a program of durationWeeks weeks starting at start.
// Outside the program bounds it returns the (0, 0) sentinel, which is a
// normal value ("no active program day"), not an error. Dates up to one
// week past the nominal end still resolve; one day further is out.
func CalculateDayAndWeek(viewed, start time.Time, durationWeeks int) (week, day int) {
	offset := int(DayUTC(viewed).Sub(DayUTC(start)).Hours() / 24)
	if offset < 0 {
		return 0, 0
	}
	week = offset/7 + 1
	day = offset%7 + 1
	if week-1 > durationWeeks {
		return 0, 0
	}
	return week, day
}

// trainingDaysByWeekday indexes a mesocycle's days by weekday label.
// Duplicate labels are rejected at save time, but unvalidated input is
// still tolerated here: the last entry wins, matching the source data's
// historical behavior.
func trainingDaysByWeekday(mesocycle *domain.Mesocycle) map[string][]domain.ExerciseSlot {
	trainingDays := make(map[string][]domain.ExerciseSlot, len(mesocycle.Days))
	for _, trainingDay := range mesocycle.Days {
		trainingDays[trainingDay.Name] = trainingDay.Slots
	}
	return trainingDays
}

// EffectiveStartDate scans forward from start (inclusive) up to seven
// days for the first date whose weekday is a training day. Returns
// ErrNoTrainingDays when the mesocycle has no usable day at all.
func EffectiveStartDate(mesocycle *domain.Mesocycle, start time.Time) (time.Time, error) {
	trainingDays := trainingDaysByWeekday(mesocycle)
	start = DayUTC(start)
	for i := 0; i < 7; i++ {
		candidate := start.AddDate(0, 0, i)
		if _, ok := trainingDays[WeekdayLabel(candidate)]; ok {
			return candidate, nil
		}
	}
	return time.Time{}, ErrNoTrainingDays
}

// ExpandMesocycle projects the weekly template onto concrete calendar
// dates: one DayPlan per date from the requested start through the last
// day of the durationWeeks-week block that begins at the effective start
// date. Dates whose weekday is in the template get one entry per bound
// exercise slot, initialized with the configured number of pending sets
// (weight 0, reps 0, not logged); every other date, including the gap
// before the effective start, is an explicit rest day.
//
// Pure and deterministic; the caller decides what to do with the plans.
func ExpandMesocycle(mesocycle *domain.Mesocycle, start time.Time, durationWeeks int, setsPerExercise map[string]int) ([]DayPlan, error) {
	effective, err := EffectiveStartDate(mesocycle, start)
	if err != nil {
		return nil, err
	}

	trainingDays := trainingDaysByWeekday(mesocycle)
	start = DayUTC(start)
	end := effective.AddDate(0, 0, durationWeeks*7-1)

	var plans []DayPlan
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		slots, ok := trainingDays[WeekdayLabel(date)]
		if !ok || date.Before(effective) {
			plans = append(plans, DayPlan{Date: date, Rest: true})
			continue
		}

		plan := DayPlan{Date: date}
		seen := make(map[string]bool, len(slots))
		for _, slot := range slots {
			if slot.Exercise == "" || seen[slot.Exercise] {
				continue
			}
			seen[slot.Exercise] = true

			count := setsPerExercise[slot.Exercise]
			if count <= 0 {
				count = DefaultSetsPerExercise
			}
			sets := make([]domain.SetEntry, count)
			for i := range sets {
				sets[i] = domain.SetEntry{Type: domain.SetRegular}
			}
			plan.Exercises = append(plan.Exercises, PlannedExercise{Name: slot.Exercise, Sets: sets})
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// SetsPerMuscleGroup sums the configured weekly set volume per muscle
// group over all bound exercise slots of the mesocycle. Only exercises
// with an entry in setsPerExercise are counted. Order-independent:
// plain commutative addition over a map.
func SetsPerMuscleGroup(mesocycle *domain.Mesocycle, setsPerExercise map[string]int) map[string]int {
	volume := make(map[string]int)
	for _, trainingDay := range mesocycle.Days {
		for _, slot := range trainingDay.Slots {
			if slot.Exercise == "" {
				continue
			}
			sets, ok := setsPerExercise[slot.Exercise]
			if !ok {
				continue
			}
			volume[slot.MuscleGroup] += sets
		}
	}
	return volume
}
