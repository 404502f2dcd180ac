package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Get retrieves the record for (userID, date).
func (r *mongoWorkoutRepository) Get(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutRecord, error) {
	var record domain.WorkoutRecord
	filter := bson.M{"userId": userID, "date": date}
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Upsert replaces the whole record for (record.UserID, record.Date),
// creating it when absent. The unique (userId, date) index serializes
// concurrent writes to the same key.
func (r *mongoWorkoutRepository) Upsert(ctx context.Context, record *domain.WorkoutRecord) error {
	if record.UserID == primitive.NilObjectID || record.Date.IsZero() {
		return errors.New("workout record requires userId and date")
	}
	now := time.Now().UTC()
	if record.ID == primitive.NilObjectID {
		record.ID = primitive.NewObjectID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if record.Exercises == nil {
		record.Exercises = map[string][]domain.SetEntry{}
	}
	if record.ExerciseOrder == nil {
		record.ExerciseOrder = []string{}
	}

	filter := bson.M{"userId": record.UserID, "date": record.Date}
	replaceOptions := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, record, replaceOptions)
	return err
}

// GetRange returns all records with from <= date <= to, ordered by date.
func (r *mongoWorkoutRepository) GetRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutRecord, error) {
	var records []domain.WorkoutRecord
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lte": to},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// FindLatestWithExercise returns the most recent record strictly before
// the given date (bounded below by notBefore) whose exercise map
// contains the named exercise. Replaces the client-side day-by-day scan
// the UI used to do with a single indexed query.
func (r *mongoWorkoutRepository) FindLatestWithExercise(ctx context.Context, userID primitive.ObjectID, exercise string, before, notBefore time.Time) (*domain.WorkoutRecord, error) {
	var record domain.WorkoutRecord
	filter := bson.M{
		"userId":                userID,
		"date":                  bson.M{"$lt": before, "$gte": notBefore},
		"exercises." + exercise: bson.M{"$exists": true},
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
