package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeekdayLabels holds the canonical weekday names used as training day
// labels, indexed by time.Weekday (Sunday = 0).
var WeekdayLabels = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// IsWeekdayLabel reports whether name is one of the canonical weekday labels.
func IsWeekdayLabel(name string) bool {
	for _, label := range WeekdayLabels {
		if label == name {
			return true
		}
	}
	return false
}

// ExerciseSlot is a muscle-group placeholder within a training day,
// optionally bound to a specific exercise by name. An unbound slot
// (empty Exercise) is kept while the user is still building the day and
// is skipped during calendar expansion.
type ExerciseSlot struct {
	MuscleGroup string `bson:"muscleGroup" json:"muscleGroup"`
	Exercise    string `bson:"exercise,omitempty" json:"exercise,omitempty"`
}

// TrainingDay is a weekday-labelled ordered list of exercise slots.
type TrainingDay struct {
	Name  string         `bson:"name" json:"name"` // weekday label, e.g. "Monday"
	Slots []ExerciseSlot `bson:"slots" json:"slots"`
}

// Mesocycle is a named multi-week training program template, composed of
// training days. Identity is (name, userId).
type Mesocycle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Name         string             `bson:"name" json:"name"`
	TemplateName string             `bson:"templateName,omitempty" json:"templateName,omitempty"`
	Days         []TrainingDay      `bson:"days" json:"days"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
