package service

import (
	"context"
	"errors"

	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrExerciseExists    = errors.New("an exercise with this name already exists")
	ErrPresetReadOnly    = errors.New("preset exercises cannot be modified or deleted")
	ErrExerciseNameEmpty = errors.New("exercise name cannot be empty")
)

// --- Service Interface ---
type ExerciseService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	GetByName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.Exercise, error)
	CreateCustom(ctx context.Context, userID primitive.ObjectID, ex domain.Exercise) (*domain.Exercise, error)
	UpdateCustom(ctx context.Context, userID primitive.ObjectID, id primitive.ObjectID, ex domain.Exercise) (*domain.Exercise, error)
	DeleteCustom(ctx context.Context, userID primitive.ObjectID, id primitive.ObjectID) error
}

// --- Service Implementation ---

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// List returns the preset catalog plus the user's custom exercises.
func (s *exerciseService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.exerciseRepo.ListForUser(ctx, userID)
}

// GetByName resolves a name to an exercise, preferring the user's
// custom exercise over a preset with the same name.
func (s *exerciseService) GetByName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrExerciseNameEmpty
	}
	exercise, err := s.exerciseRepo.GetByName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// CreateCustom adds a user-owned exercise to the catalog.
func (s *exerciseService) CreateCustom(ctx context.Context, userID primitive.ObjectID, ex domain.Exercise) (*domain.Exercise, error) {
	if ex.Name == "" {
		return nil, ErrExerciseNameEmpty
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create an exercise")
	}

	exercise := &domain.Exercise{
		UserID:      &userID,
		Name:        ex.Name,
		MuscleGroup: ex.MuscleGroup,
		Equipment:   ex.Equipment,
		Description: ex.Description,
		VideoURL:    ex.VideoURL,
	}

	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

// UpdateCustom edits a user-owned exercise. Presets are read only.
func (s *exerciseService) UpdateCustom(ctx context.Context, userID primitive.ObjectID, id primitive.ObjectID, ex domain.Exercise) (*domain.Exercise, error) {
	existing, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if existing.IsPreset() || *existing.UserID != userID {
		return nil, ErrPresetReadOnly
	}
	if ex.Name == "" {
		return nil, ErrExerciseNameEmpty
	}

	existing.Name = ex.Name
	existing.MuscleGroup = ex.MuscleGroup
	existing.Equipment = ex.Equipment
	existing.Description = ex.Description
	existing.VideoURL = ex.VideoURL

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}
	return existing, nil
}

// DeleteCustom removes a user-owned exercise. Workout history that
// references the exercise by name is untouched.
func (s *exerciseService) DeleteCustom(ctx context.Context, userID primitive.ObjectID, id primitive.ObjectID) error {
	existing, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if existing.IsPreset() || *existing.UserID != userID {
		return ErrPresetReadOnly
	}

	err = s.exerciseRepo.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}
