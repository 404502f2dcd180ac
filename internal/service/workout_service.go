package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound    = errors.New("no workout recorded for this date")
	ErrExerciseNotInDay   = errors.New("exercise is not part of this workout")
	ErrSetIndexOutOfRange = errors.New("set index out of range")
	ErrOrderMismatch      = errors.New("exercise order must list exactly the exercises present")
	ErrNoPriorSession     = errors.New("no earlier session found for this exercise")
	ErrInvalidSetType     = errors.New("set type must be regular or dropset")
)

// lastSessionLookback bounds how far back LastSessionStats searches.
const lastSessionLookback = 365 * 24 * time.Hour

// LastSession describes the most recent earlier workout containing a
// given exercise.
type LastSession struct {
	Date time.Time
	Sets []domain.SetEntry
}

// --- Service Interface ---
type WorkoutService interface {
	Get(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutRecord, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, record *domain.WorkoutRecord) (*domain.WorkoutRecord, error)
	AddSet(ctx context.Context, userID primitive.ObjectID, date time.Time, exercise string, setType domain.SetType) (*domain.WorkoutRecord, error)
	UpdateSet(ctx context.Context, userID primitive.ObjectID, date time.Time, exercise string, index int, set domain.SetEntry) (*domain.WorkoutRecord, error)
	RemoveSet(ctx context.Context, userID primitive.ObjectID, date time.Time, exercise string, index int) (*domain.WorkoutRecord, error)
	RemoveExercise(ctx context.Context, userID primitive.ObjectID, date time.Time, exercise string) (*domain.WorkoutRecord, error)
	UpdateNotes(ctx context.Context, userID primitive.ObjectID, date time.Time, notes string) (*domain.WorkoutRecord, error)
	LastSessionStats(ctx context.Context, userID primitive.ObjectID, exercise string, before time.Time) (*LastSession, error)
	GetRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutRecord, error)
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

// Get retrieves the workout record for a calendar day.
func (s *workoutService) Get(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutRecord, error) {
	record, err := s.workoutRepo.Get(ctx, userID, DayUTC(date))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return record, nil
}

// Upsert replaces the record for the record's date. The exercise order
// must be a permutation of the exercise map's keys.
func (s *workoutService) Upsert(ctx context.Context, userID primitive.ObjectID, record *domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	if record == nil {
		return nil, errors.New("workout record is required")
	}
	if record.Exercises == nil {
		record.Exercises = make(map[string][]domain.SetEntry)
	}
	if err := validateOrder(record); err != nil {
		return nil, err
	}
	record.UserID = userID
	record.Date = DayUTC(record.Date)
	if err := s.workoutRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// validateOrder checks that ExerciseOrder lists every exercise exactly
// once and nothing else.
func validateOrder(record *domain.WorkoutRecord) error {
	if len(record.ExerciseOrder) != len(record.Exercises) {
		return ErrOrderMismatch
	}
	seen := make(map[string]bool, len(record.ExerciseOrder))
	for _, name := range record.ExerciseOrder {
		if seen[name] {
			return fmt.Errorf("%w: %s listed twice", ErrOrderMismatch, name)
		}
		if _, ok := record.Exercises[name]; !ok {
			return fmt.Errorf("%w: %s not in workout", ErrOrderMismatch, name)
		}
		seen[name] = true
	}
	return nil
}

// loadOrCreate returns the existing record for the date, or a fresh
// empty record when none exists yet.
func (s *workoutService) loadOrCreate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutRecord, error) {
	record, err := s.workoutRepo.Get(ctx, userID, DayUTC(date))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.WorkoutRecord{
				UserID:        userID,
				Date:          DayUTC(date),
				Exercises:     make(map[string][]domain.SetEntry),
				ExerciseOrder: []string{},
			}, nil
		}
		return nil, err
	}
	if record.Exercises == nil {
		record.Exercises = make(map[string][]domain.SetEntry)
	}
	return record, nil
}

// AddSet appends one set to the exercise, creating the day's record and
// the exercise entry as needed. The new set copies the previous set's
// weight and reps so the user only has to adjust, not retype; the first
// set of an exercise starts zeroed. Logging a set on a rest day clears
// the rest marker.
func (s *workoutService) AddSet(ctx context.Context, userID primitive.ObjectID, date time.Time, exercise string, setType domain.SetType) (*domain.WorkoutRecord, error) {
	if exercise == "" {
		return nil, errors.New("exercise name is required")
	}
	if setType == "" {
		setType = domain.SetRegular
	}
	if setType != domain.SetRegular && setType != domain.SetDropset {
		return nil, ErrInvalidSetType
	}
	record, err := s.loadOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	sets, exists := record.Exercises[exercise]
	newSet := domain.SetEntry{Type: setType}
	if len(sets) > 0 {
		last := sets[len(sets)-1]
		newSet.Weight = last.Weight
		newSet.Reps = last.Reps
	}
	record.Exercises[exercise] = append(sets, newSet)
	if !exists {
		record.ExerciseOrder = append(record.ExerciseOrder, exercise)
	}
	record.IsRestDay = false

	if err := s.workoutRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateSet overwrites the set at index for the exercise.
func (s *workoutService) UpdateSet(ctx context.Context, userID primitive.ObjectID, date time.Time, exercise string, index int, set domain.SetEntry) (*domain.WorkoutRecord, error) {
	record, err := s.Get(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	sets, ok := record.Exercises[exercise]
	if !ok {
		return nil, ErrExerciseNotInDay
	}
	if index < 0 || index >= len(sets) {
		return nil, ErrSetIndexOutOfRange
	}
	sets[index] = set
	record.IsRestDay = false

	if err := s.workoutRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// RemoveSet deletes the set at index. Removing the last set of an
// exercise removes the exercise itself from the workout.
func (s *workoutService) RemoveSet(ctx context.Context, userID primitive.ObjectID, date time.Time, exercise string, index int) (*domain.WorkoutRecord, error) {
	record, err := s.Get(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	sets, ok := record.Exercises[exercise]
	if !ok {
		return nil, ErrExerciseNotInDay
	}
	if index < 0 || index >= len(sets) {
		return nil, ErrSetIndexOutOfRange
	}

	sets = append(sets[:index], sets[index+1:]...)
	if len(sets) == 0 {
		delete(record.Exercises, exercise)
		record.ExerciseOrder = removeFromOrder(record.ExerciseOrder, exercise)
	} else {
		record.Exercises[exercise] = sets
	}

	if err := s.workoutRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// RemoveExercise drops an exercise and all its sets from the workout.
func (s *workoutService) RemoveExercise(ctx context.Context, userID primitive.ObjectID, date time.Time, exercise string) (*domain.WorkoutRecord, error) {
	record, err := s.Get(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if _, ok := record.Exercises[exercise]; !ok {
		return nil, ErrExerciseNotInDay
	}
	delete(record.Exercises, exercise)
	record.ExerciseOrder = removeFromOrder(record.ExerciseOrder, exercise)

	if err := s.workoutRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateNotes sets the free-text notes for a day, creating the record
// when none exists. Notes alone do not clear a rest marker.
func (s *workoutService) UpdateNotes(ctx context.Context, userID primitive.ObjectID, date time.Time, notes string) (*domain.WorkoutRecord, error) {
	record, err := s.loadOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	record.Notes = notes

	if err := s.workoutRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// LastSessionStats finds the most recent workout strictly before the
// given date that contains the exercise, looking back at most a year.
func (s *workoutService) LastSessionStats(ctx context.Context, userID primitive.ObjectID, exercise string, before time.Time) (*LastSession, error) {
	if exercise == "" {
		return nil, errors.New("exercise name is required")
	}
	day := DayUTC(before)
	record, err := s.workoutRepo.FindLatestWithExercise(ctx, userID, exercise, day, day.Add(-lastSessionLookback))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPriorSession
		}
		return nil, err
	}
	return &LastSession{Date: record.Date, Sets: record.Exercises[exercise]}, nil
}

// GetRange returns all workout records between from and to inclusive,
// ordered by date ascending.
func (s *workoutService) GetRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutRecord, error) {
	from, to = DayUTC(from), DayUTC(to)
	if to.Before(from) {
		return nil, errors.New("range end must not precede range start")
	}
	return s.workoutRepo.GetRange(ctx, userID, from, to)
}

func removeFromOrder(order []string, exercise string) []string {
	out := order[:0]
	for _, name := range order {
		if name != exercise {
			out = append(out, name)
		}
	}
	return out
}
