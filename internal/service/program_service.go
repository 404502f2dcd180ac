package service

import (
	"context"
	"errors"
	"time"

	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoActiveProgram = errors.New("no active program loaded")
	ErrInvalidPolicy   = errors.New("unknown load policy")
)

// LoadPolicy decides what happens to a date that already has a stored
// workout record when a program is loaded over it.
type LoadPolicy string

const (
	// LoadPolicyOverwrite unconditionally replaces existing records, as
	// the original client did. Destructive for in-progress data.
	LoadPolicyOverwrite LoadPolicy = "overwrite"
	// LoadPolicyMerge leaves dates that already have a record untouched
	// and only fills the gaps.
	LoadPolicyMerge LoadPolicy = "merge"
)

// ProgramStatus is the answer to "where am I in my program on this date".
// Week and Day are both 0 outside the program bounds; that is a normal
// state ("Day 0 Week 0" in the UI), not a failure.
type ProgramStatus struct {
	MesocycleName string
	Week          int
	Day           int
	DurationWeeks int
	StartDate     time.Time
}

// --- Service Interface ---
type ProgramService interface {
	// Load expands the named mesocycle onto the calendar starting at
	// startDate and persists one workout record per day under the given
	// policy, then stores the active program. Returns the stored program
	// and the number of day records written.
	Load(ctx context.Context, userID primitive.ObjectID, mesocycleName string, startDate time.Time, durationWeeks int, setsPerExercise map[string]int, policy LoadPolicy) (*domain.Program, int, error)
	Status(ctx context.Context, userID primitive.ObjectID, viewedDate time.Time) (*ProgramStatus, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

// --- Service Implementation ---

type programService struct {
	mesocycleRepo repository.MesocycleRepository
	programRepo   repository.ProgramRepository
	workoutRepo   repository.WorkoutRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	mesocycleRepo repository.MesocycleRepository,
	programRepo repository.ProgramRepository,
	workoutRepo repository.WorkoutRepository,
) ProgramService {
	return &programService{
		mesocycleRepo: mesocycleRepo,
		programRepo:   programRepo,
		workoutRepo:   workoutRepo,
	}
}

// Load projects a mesocycle onto the calendar.
//
// The no-training-days check runs inside ExpandMesocycle before anything
// is written, so a failed validation leaves the store untouched. A store
// failure partway through, however, leaves the days written so far in
// place: there is no cross-document transaction here, the error just
// propagates.
func (s *programService) Load(ctx context.Context, userID primitive.ObjectID, mesocycleName string, startDate time.Time, durationWeeks int, setsPerExercise map[string]int, policy LoadPolicy) (*domain.Program, int, error) {
	if userID == primitive.NilObjectID || mesocycleName == "" {
		return nil, 0, errors.New("user ID and mesocycle name are required")
	}
	if policy == "" {
		policy = LoadPolicyOverwrite
	}
	if policy != LoadPolicyOverwrite && policy != LoadPolicyMerge {
		return nil, 0, ErrInvalidPolicy
	}

	mesocycle, err := s.mesocycleRepo.GetByName(ctx, userID, mesocycleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrMesocycleNotFound
		}
		return nil, 0, err
	}

	plans, err := ExpandMesocycle(mesocycle, startDate, durationWeeks, setsPerExercise)
	if err != nil {
		return nil, 0, err
	}

	written := 0
	for _, plan := range plans {
		if policy == LoadPolicyMerge {
			_, err := s.workoutRepo.Get(ctx, userID, plan.Date)
			if err == nil {
				continue // keep what the user already logged
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, written, err
			}
		}
		if err := s.workoutRepo.Upsert(ctx, planToRecord(userID, plan)); err != nil {
			return nil, written, err
		}
		written++
	}

	effective, err := EffectiveStartDate(mesocycle, startDate)
	if err != nil {
		return nil, written, err // unreachable after a successful expansion
	}

	program := &domain.Program{
		UserID:          userID,
		MesocycleName:   mesocycle.Name,
		StartDate:       effective,
		DurationWeeks:   durationWeeks,
		SetsPerExercise: setsPerExercise,
	}
	if err := s.programRepo.Upsert(ctx, program); err != nil {
		return nil, written, err
	}
	return program, written, nil
}

// Status computes (week, day) for a viewed date against the active
// program. The (0, 0) sentinel comes back inside a normal response.
func (s *programService) Status(ctx context.Context, userID primitive.ObjectID, viewedDate time.Time) (*ProgramStatus, error) {
	program, err := s.programRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveProgram
		}
		return nil, err
	}

	week, day := CalculateDayAndWeek(viewedDate, program.StartDate, program.DurationWeeks)
	return &ProgramStatus{
		MesocycleName: program.MesocycleName,
		Week:          week,
		Day:           day,
		DurationWeeks: program.DurationWeeks,
		StartDate:     program.StartDate,
	}, nil
}

// Clear drops the active program pointer; already-written workout
// records stay.
func (s *programService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	err := s.programRepo.DeleteByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoActiveProgram
		}
		return err
	}
	return nil
}

// planToRecord turns a projected day into the workout record persisted
// for it.
func planToRecord(userID primitive.ObjectID, plan DayPlan) *domain.WorkoutRecord {
	record := &domain.WorkoutRecord{
		UserID:        userID,
		Date:          plan.Date,
		IsRestDay:     plan.Rest,
		Exercises:     make(map[string][]domain.SetEntry, len(plan.Exercises)),
		ExerciseOrder: make([]string, 0, len(plan.Exercises)),
	}
	for _, exercise := range plan.Exercises {
		record.Exercises[exercise.Name] = exercise.Sets
		record.ExerciseOrder = append(record.ExerciseOrder, exercise.Name)
	}
	return record
}
