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

const programCollectionName = "programs"

// mongoProgramRepository implements repository.ProgramRepository.
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new Program repository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Upsert stores the active program for program.UserID, replacing any
// previously loaded one. The unique userId index enforces "one active
// program per user".
func (r *mongoProgramRepository) Upsert(ctx context.Context, program *domain.Program) error {
	if program.UserID == primitive.NilObjectID || program.MesocycleName == "" {
		return errors.New("program requires userId and mesocycleName")
	}
	if program.ID == primitive.NilObjectID {
		program.ID = primitive.NewObjectID()
	}
	program.LoadedAt = time.Now().UTC()

	filter := bson.M{"userId": program.UserID}
	replaceOptions := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, program, replaceOptions)
	return err
}

// GetByUser retrieves the active program for a user.
func (r *mongoProgramRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Program, error) {
	var program domain.Program
	filter := bson.M{"userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// DeleteByUser clears the active program pointer. Workout records
// written during expansion are left alone.
func (r *mongoProgramRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes. Call during startup.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
