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

const mesocycleCollectionName = "mesocycles"

// mongoMesocycleRepository implements repository.MesocycleRepository.
// Training days and their exercise slots are embedded in the mesocycle
// document, so a mesocycle always loads as one unit.
type mongoMesocycleRepository struct {
	collection *mongo.Collection
}

// NewMongoMesocycleRepository creates a new Mesocycle repository.
func NewMongoMesocycleRepository(db *mongo.Database) repository.MesocycleRepository {
	return &mongoMesocycleRepository{
		collection: db.Collection(mesocycleCollectionName),
	}
}

// Create inserts a new mesocycle.
func (r *mongoMesocycleRepository) Create(ctx context.Context, mesocycle *domain.Mesocycle) (primitive.ObjectID, error) {
	if mesocycle.UserID == primitive.NilObjectID || mesocycle.Name == "" {
		return primitive.NilObjectID, errors.New("mesocycle requires userId and name")
	}

	mesocycle.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	mesocycle.CreatedAt = now
	mesocycle.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, mesocycle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// (userId, name) unique index hit.
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted mesocycle ID")
	}
	return insertedID, nil
}

// GetByName retrieves one mesocycle by its (userId, name) identity.
func (r *mongoMesocycleRepository) GetByName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.Mesocycle, error) {
	var mesocycle domain.Mesocycle
	filter := bson.M{"userId": userID, "name": name}
	err := r.collection.FindOne(ctx, filter).Decode(&mesocycle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &mesocycle, nil
}

// ListByUser retrieves all mesocycles owned by the user.
func (r *mongoMesocycleRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Mesocycle, error) {
	var mesocycles []domain.Mesocycle
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &mesocycles); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return mesocycles, nil
}

// Update replaces the day list (and template name) of an existing
// mesocycle, keyed by (userId, name). Renames go through Delete+Create.
func (r *mongoMesocycleRepository) Update(ctx context.Context, mesocycle *domain.Mesocycle) error {
	if mesocycle.UserID == primitive.NilObjectID || mesocycle.Name == "" {
		return errors.New("mesocycle userId and name are required for update")
	}

	filter := bson.M{"userId": mesocycle.UserID, "name": mesocycle.Name}
	updateDoc := bson.M{
		"$set": bson.M{
			"templateName": mesocycle.TemplateName,
			"days":         mesocycle.Days,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a mesocycle owned by the user.
func (r *mongoMesocycleRepository) Delete(ctx context.Context, userID primitive.ObjectID, name string) error {
	if userID == primitive.NilObjectID || name == "" {
		return errors.New("user ID and mesocycle name are required for deletion")
	}

	filter := bson.M{"userId": userID, "name": name}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMesocycleIndexes creates necessary indexes. Call during startup.
func EnsureMesocycleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
