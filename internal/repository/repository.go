package repository

import (
	"context"
	"time"

	"ironlog/meso-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
// Presets (nil UserID) and per-user custom exercises share one collection.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByName resolves an exercise name to its metadata, preferring the
	// user's own exercise over a preset with the same name.
	GetByName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.Exercise, error)
	// ListForUser returns all presets plus the user's custom exercises.
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error // only the owner can delete
	CountPresets(ctx context.Context) (int64, error)
}

// MesocycleRepository defines the interface for mesocycle persistence.
// Mesocycles are addressed by (name, userId).
type MesocycleRepository interface {
	Create(ctx context.Context, mesocycle *domain.Mesocycle) (primitive.ObjectID, error)
	GetByName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.Mesocycle, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Mesocycle, error)
	Update(ctx context.Context, mesocycle *domain.Mesocycle) error
	Delete(ctx context.Context, userID primitive.ObjectID, name string) error
}

// ProgramRepository persists the single active program per user.
type ProgramRepository interface {
	Upsert(ctx context.Context, program *domain.Program) error
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Program, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// WorkoutRepository is the persisted workout store: one record per
// (user, date). The unique (userId, date) index serializes concurrent
// writes to the same key; callers above this layer rely on that.
type WorkoutRepository interface {
	Get(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutRecord, error)
	// Upsert replaces the record for (record.UserID, record.Date), creating
	// it when absent.
	Upsert(ctx context.Context, record *domain.WorkoutRecord) error
	// GetRange returns records with from <= date <= to, ordered by date.
	GetRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutRecord, error)
	// FindLatestWithExercise returns the most recent record strictly before
	// the given date (and not before notBefore) containing the exercise.
	FindLatestWithExercise(ctx context.Context, userID primitive.ObjectID, exercise string, before, notBefore time.Time) (*domain.WorkoutRecord, error)
}
