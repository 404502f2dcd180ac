package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetType distinguishes straight sets from dropsets.
type SetType string

const (
	SetRegular SetType = "regular"
	SetDropset SetType = "dropset"
)

// SetEntry is one logged or pending repetition group (weight x reps) for
// an exercise on a given day.
type SetEntry struct {
	Weight float64 `bson:"weight" json:"weight"`
	Reps   int     `bson:"reps" json:"reps"`
	Logged bool    `bson:"logged" json:"logged"`
	Type   SetType `bson:"type,omitempty" json:"type,omitempty"` // empty means regular
}

// WorkoutRecord holds everything logged for one (user, date) pair.
// Rest days are stored explicitly (IsRestDay) so that on reload a rest
// day can be told apart from a date that was simply never written.
//
// Invariant: ExerciseOrder is always a permutation of the keys of
// Exercises; every mutation must keep the two in sync.
type WorkoutRecord struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID    `bson:"userId" json:"userId"`
	Date          time.Time             `bson:"date" json:"date"` // UTC midnight
	IsRestDay     bool                  `bson:"isRestDay" json:"isRestDay"`
	Exercises     map[string][]SetEntry `bson:"exercises" json:"exercises"`
	ExerciseOrder []string              `bson:"exerciseOrder" json:"exerciseOrder"`
	Notes         string                `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt" json:"updatedAt"`
}
