package service

import (
	"context"
	"errors"
	"fmt"

	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMesocycleNotFound = errors.New("mesocycle not found")
	ErrMesocycleExists   = errors.New("a mesocycle with this name already exists")
	ErrDuplicateWeekday  = errors.New("mesocycle has two training days with the same weekday")
	ErrInvalidWeekday    = errors.New("training day name must be a weekday label")
	ErrValidationFailed  = errors.New("mesocycle validation failed")
)

// --- Service Interface ---
type MesocycleService interface {
	Create(ctx context.Context, userID primitive.ObjectID, name, templateName string, days []domain.TrainingDay) (*domain.Mesocycle, error)
	GetByName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.Mesocycle, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Mesocycle, error)
	Update(ctx context.Context, userID primitive.ObjectID, name, templateName string, days []domain.TrainingDay) (*domain.Mesocycle, error)
	Delete(ctx context.Context, userID primitive.ObjectID, name string) error
	// Volume is the pre-expansion weekly summary: sets per muscle group
	// for the given per-exercise set configuration.
	Volume(ctx context.Context, userID primitive.ObjectID, name string, setsPerExercise map[string]int) (map[string]int, error)
}

// --- Service Implementation ---

type mesocycleService struct {
	mesocycleRepo repository.MesocycleRepository
}

// NewMesocycleService creates a new instance of mesocycleService.
func NewMesocycleService(mesocycleRepo repository.MesocycleRepository) MesocycleService {
	return &mesocycleService{mesocycleRepo: mesocycleRepo}
}

// validateDays rejects invalid or duplicate weekday labels. The legacy
// data model silently kept the last day on a weekday collision; that
// almost certainly lost user input, so collisions are now an error at
// save time.
func validateDays(days []domain.TrainingDay) error {
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		if !domain.IsWeekdayLabel(day.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidWeekday, day.Name)
		}
		if seen[day.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateWeekday, day.Name)
		}
		seen[day.Name] = true
	}
	return nil
}

// Create validates and persists a new mesocycle for the user.
func (s *mesocycleService) Create(ctx context.Context, userID primitive.ObjectID, name, templateName string, days []domain.TrainingDay) (*domain.Mesocycle, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a mesocycle")
	}
	if err := validateDays(days); err != nil {
		return nil, err
	}

	mesocycle := &domain.Mesocycle{
		UserID:       userID,
		Name:         name,
		TemplateName: templateName,
		Days:         days,
	}

	_, err := s.mesocycleRepo.Create(ctx, mesocycle)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrMesocycleExists
		}
		return nil, err
	}
	return mesocycle, nil
}

// GetByName retrieves one of the user's mesocycles.
func (s *mesocycleService) GetByName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.Mesocycle, error) {
	mesocycle, err := s.mesocycleRepo.GetByName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMesocycleNotFound
		}
		return nil, err
	}
	return mesocycle, nil
}

// List retrieves all mesocycles owned by the user.
func (s *mesocycleService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Mesocycle, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.mesocycleRepo.ListByUser(ctx, userID)
}

// Update replaces the days and template name of an existing mesocycle.
func (s *mesocycleService) Update(ctx context.Context, userID primitive.ObjectID, name, templateName string, days []domain.TrainingDay) (*domain.Mesocycle, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	if err := validateDays(days); err != nil {
		return nil, err
	}

	existing, err := s.mesocycleRepo.GetByName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMesocycleNotFound
		}
		return nil, err
	}

	existing.TemplateName = templateName
	existing.Days = days

	if err := s.mesocycleRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMesocycleNotFound
		}
		return nil, err
	}
	return existing, nil
}

// Delete removes one of the user's mesocycles. Workout records already
// expanded from it are kept.
func (s *mesocycleService) Delete(ctx context.Context, userID primitive.ObjectID, name string) error {
	if userID == primitive.NilObjectID || name == "" {
		return errors.New("user ID and mesocycle name are required")
	}

	err := s.mesocycleRepo.Delete(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMesocycleNotFound
		}
		return err
	}
	return nil
}

// Volume computes the weekly sets-per-muscle-group summary.
func (s *mesocycleService) Volume(ctx context.Context, userID primitive.ObjectID, name string, setsPerExercise map[string]int) (map[string]int, error) {
	mesocycle, err := s.GetByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	return SetsPerMuscleGroup(mesocycle, setsPerExercise), nil
}
