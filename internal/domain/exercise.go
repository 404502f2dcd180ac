package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single exercise definition in the catalog.
// Preset exercises are shared by everyone (UserID is nil); custom
// exercises belong to the user who created them.
type Exercise struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"` // nil for presets
	Name        string              `bson:"name" json:"name"`
	MuscleGroup string              `bson:"muscleGroup" json:"muscleGroup"` // e.g. "Chest", "Quads", "Back"
	Equipment   string              `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	VideoURL    string              `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsPreset reports whether the exercise belongs to the shared catalog.
func (e *Exercise) IsPreset() bool {
	return e.UserID == nil || *e.UserID == primitive.NilObjectID
}
