package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program is the active projection of a mesocycle onto the calendar for
// one user: which mesocycle was loaded, when it effectively starts and
// for how many weeks. At most one per user; loading a mesocycle again
// replaces it. The per-date workout records it fanned out live in the
// workouts collection and survive a replace.
type Program struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	MesocycleName   string             `bson:"mesocycleName" json:"mesocycleName"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"` // effective start, UTC midnight
	DurationWeeks   int                `bson:"durationWeeks" json:"durationWeeks"`
	SetsPerExercise map[string]int     `bson:"setsPerExercise,omitempty" json:"setsPerExercise,omitempty"`
	LoadedAt        time.Time          `bson:"loadedAt" json:"loadedAt"`
}
