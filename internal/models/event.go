package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InterviewTransition is one applied status change, stored in the
// interview_events collection.
type InterviewTransition struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InterviewID string             `bson:"interview_id" json:"interview_id"`
	ActorID     string             `bson:"actor_id" json:"actor_id"`
	Event       InterviewEvent     `bson:"event" json:"event"`
	From        InterviewStatus    `bson:"from" json:"from"`
	To          InterviewStatus    `bson:"to" json:"to"`
	At          time.Time          `bson:"at" json:"at"`
}
